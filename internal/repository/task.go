package repository

import (
	"context"

	"taskr/internal/domain"
)

// TaskRepository exposes persistence operations for Task records.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	// ListByUser returns the user's tasks ordered by due date ascending,
	// ties broken by insertion order.
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TaskStatus) error
	Delete(ctx context.Context, id int64) error
}
