package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"taskr/internal/domain"
	"taskr/internal/repository"
)

// DueDateLayout is the dd/mm/yyyy format the task form submits.
const DueDateLayout = "02/01/2006"

var (
	// ErrTaskNotFound indicates the referenced task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrNotTaskOwner is returned when a user tries to mutate someone else's task.
	ErrNotTaskOwner = errors.New("task belongs to another user")
	// ErrInvalidDueDate is returned for a malformed due date.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrInvalidPriority is returned for a priority outside the allowed range.
	ErrInvalidPriority = errors.New("invalid priority")
)

// TaskService coordinates task list operations backed by the repository.
// Ownership is enforced here: Close and Delete refuse to touch tasks not
// owned by the requesting user.
type TaskService interface {
	Add(ctx context.Context, userID int64, name, dueDate string, priority int) (*domain.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Close(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) Add(ctx context.Context, userID int64, name, dueDate string, priority int) (*domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("task name is required")
	}

	due, err := time.Parse(DueDateLayout, strings.TrimSpace(dueDate))
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	if priority < domain.MinPriority || priority > domain.MaxPriority {
		return nil, ErrInvalidPriority
	}

	task := &domain.Task{
		UserID:   userID,
		Name:     name,
		DueDate:  due,
		Priority: priority,
		Status:   domain.TaskStatusOpen,
	}

	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListForUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.tasks.ListByUser(ctx, userID)
}

func (s *taskService) Close(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	task, err := s.owned(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, domain.TaskStatusClosed); err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatusClosed
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, taskID, userID int64) error {
	if _, err := s.owned(ctx, taskID, userID); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, taskID)
}

func (s *taskService) owned(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrNotTaskOwner
	}
	return task, nil
}
