package repository

import (
	"context"

	"github.com/akylbekov/task-tracker/internal/domain"
)

// ListTasksInput filters are conjunctive; zero values mean "no filter".
type ListTasksInput struct {
	UserID   string
	Status   domain.Status
	Priority domain.Priority
	Search   string
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	TaskID      string
	UserID      string
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
