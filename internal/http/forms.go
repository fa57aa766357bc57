package http

// Form bodies are bound into typed requests before anything reaches the
// service layer.

type loginForm struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerForm struct {
	Name     string `form:"name" binding:"required,min=2,max=25"`
	Email    string `form:"email" binding:"required,email,max=40"`
	Password string `form:"password" binding:"required,min=6,max=40"`
	Confirm  string `form:"confirm" binding:"required"`
}

type taskForm struct {
	Name     string `form:"name" binding:"required"`
	DueDate  string `form:"due_date" binding:"required"`
	Priority int    `form:"priority" binding:"required"`
}
