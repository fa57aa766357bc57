package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskr/internal/domain"
	"taskr/internal/service"
	"taskr/internal/session"
)

// User-visible messages flashed at the handler boundary.
const (
	msgWelcome          = "Welcome!"
	msgGoodbye          = "Goodbye!"
	msgRegistered       = "Thanks for registering. Please login."
	msgInvalidLogin     = "Invalid username or password."
	msgDuplicateUser    = "That username and/or email already exist."
	msgLoginFirst       = "You need to login first."
	msgPasswordMismatch = "Passwords must match."
	msgInvalidForm      = "Please fill in all fields correctly."
	msgTaskAdded        = "New entry was successfully posted. Thanks."
	msgTaskClosed       = "The task was marked as complete. Nice."
	msgTaskDeleted      = "The task was deleted. Why not add a new one?"
	msgInvalidDueDate   = "Invalid due date. Use dd/mm/yyyy."
	msgInvalidPriority  = "Priority must be between 1 and 10."
	msgTaskMissing      = "That task does not exist."
	msgUpdateOthers     = "You can only update tasks that belong to you."
	msgDeleteOthers     = "You can only delete tasks that belong to you."
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	tasks    service.TaskService
	sessions *session.Manager
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, tasks service.TaskService, sessions *session.Manager, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:    users,
		tasks:    tasks,
		sessions: sessions,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(loadTemplates())

	router.GET("/", h.showLogin)
	router.POST("/", h.login)
	router.GET("/register/", h.showRegister)
	router.POST("/register/", h.register)
	router.GET("/logout/", h.logout)
	router.GET("/tasks/", h.listTasks)
	router.POST("/add/", h.addTask)
	router.GET("/complete/:id/", h.completeTask)
	router.GET("/delete/:id/", h.deleteTask)
	router.NoRoute(h.notFound)
}

func (h *Handler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Flash": popFlash(c)})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgInvalidLogin})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), form.Name, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusOK, "login.html", gin.H{"Error": msgInvalidLogin})
			return
		}
		h.serverError(c, "authenticate user", err)
		return
	}

	token, err := h.sessions.Issue(session.Session{UserID: user.ID, Role: user.Role})
	if err != nil {
		h.serverError(c, "issue session", err)
		return
	}

	c.SetCookie(session.CookieName, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
	setFlash(c, msgWelcome)
	c.Redirect(http.StatusFound, "/tasks/")
}

func (h *Handler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Flash": popFlash(c)})
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": msgInvalidForm})
		return
	}

	_, err := h.users.Register(c.Request.Context(), form.Name, form.Email, form.Password, form.Confirm)
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": msgPasswordMismatch})
		return
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.HTML(http.StatusOK, "register.html", gin.H{"Error": msgDuplicateUser})
		return
	case err != nil:
		h.serverError(c, "register user", err)
		return
	}

	setFlash(c, msgRegistered)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if _, err := h.currentSession(c); err == nil {
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
		setFlash(c, msgGoodbye)
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) listTasks(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListForUser(c.Request.Context(), sess.UserID)
	if err != nil {
		h.serverError(c, "list tasks", err)
		return
	}

	var open, closed []domain.Task
	for _, task := range tasks {
		if task.Open() {
			open = append(open, task)
		} else {
			closed = append(closed, task)
		}
	}

	priorities := make([]int, 0, domain.MaxPriority-domain.MinPriority+1)
	for p := domain.MinPriority; p <= domain.MaxPriority; p++ {
		priorities = append(priorities, p)
	}

	c.HTML(http.StatusOK, "tasks.html", gin.H{
		"Flash":       popFlash(c),
		"OpenTasks":   open,
		"ClosedTasks": closed,
		"Priorities":  priorities,
	})
}

func (h *Handler) addTask(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		setFlash(c, msgInvalidForm)
		c.Redirect(http.StatusFound, "/tasks/")
		return
	}

	_, err := h.tasks.Add(c.Request.Context(), sess.UserID, form.Name, form.DueDate, form.Priority)
	switch {
	case errors.Is(err, service.ErrInvalidDueDate):
		setFlash(c, msgInvalidDueDate)
	case errors.Is(err, service.ErrInvalidPriority):
		setFlash(c, msgInvalidPriority)
	case err != nil:
		h.serverError(c, "add task", err)
		return
	default:
		setFlash(c, msgTaskAdded)
	}
	c.Redirect(http.StatusFound, "/tasks/")
}

func (h *Handler) completeTask(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	_, err := h.tasks.Close(c.Request.Context(), id, sess.UserID)
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		setFlash(c, msgTaskMissing)
	case errors.Is(err, service.ErrNotTaskOwner):
		setFlash(c, msgUpdateOthers)
	case err != nil:
		h.serverError(c, "complete task", err)
		return
	default:
		setFlash(c, msgTaskClosed)
	}
	c.Redirect(http.StatusFound, "/tasks/")
}

func (h *Handler) deleteTask(c *gin.Context) {
	sess, ok := h.requireSession(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	err := h.tasks.Delete(c.Request.Context(), id, sess.UserID)
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		setFlash(c, msgTaskMissing)
	case errors.Is(err, service.ErrNotTaskOwner):
		setFlash(c, msgDeleteOthers)
	case err != nil:
		h.serverError(c, "delete task", err)
		return
	default:
		setFlash(c, msgTaskDeleted)
	}
	c.Redirect(http.StatusFound, "/tasks/")
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", nil)
}

// currentSession decodes the session cookie, if any.
func (h *Handler) currentSession(c *gin.Context) (session.Session, error) {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		return session.Session{}, session.ErrNoSession
	}
	return h.sessions.Parse(token)
}

// requireSession gates protected routes: an anonymous request is redirected
// to the login page with a message instead of performing the action.
func (h *Handler) requireSession(c *gin.Context) (session.Session, bool) {
	sess, err := h.currentSession(c)
	if err != nil {
		setFlash(c, msgLoginFirst)
		c.Redirect(http.StatusFound, "/")
		return session.Session{}, false
	}
	return sess, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.HTML(http.StatusNotFound, "404.html", nil)
		return 0, false
	}
	return id, true
}

func (h *Handler) serverError(c *gin.Context, action string, err error) {
	h.logger.WithError(err).Errorf("%s failed", action)
	c.String(http.StatusInternalServerError, "Something went wrong.")
}
