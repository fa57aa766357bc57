package domain

import "time"

type TaskStatus string

const (
	TaskStatusOpen   TaskStatus = "open"
	TaskStatusClosed TaskStatus = "closed"
)

// Priority bounds accepted by the new-task form.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Task is a single entry on a user's task list. UserID references the
// owning user and is set once at creation.
type Task struct {
	ID        int64
	UserID    int64
	Name      string
	DueDate   time.Time
	Priority  int
	Status    TaskStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the task still needs doing.
func (t Task) Open() bool {
	return t.Status == TaskStatusOpen
}
