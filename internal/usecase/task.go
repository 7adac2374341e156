package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/repository"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
	Status      domain.Status
	Priority    domain.Priority
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if input.Status == "" {
		input.Status = domain.StatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}

	task, err := u.repo.Create(ctx, &domain.Task{
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

type ListTasksInput struct {
	UserID   string
	Status   domain.Status
	Priority domain.Priority
	Search   string
}

func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID:   input.UserID,
		Status:   input.Status,
		Priority: input.Priority,
		Search:   input.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

type UpdateTaskInput struct {
	TaskID      string
	UserID      string
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *domain.Priority
}

// UpdateTask rejects an empty field subset before touching the store.
func (u *TaskUsecase) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if input.Title == nil && input.Description == nil && input.Status == nil && input.Priority == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		input.Title = &title
	}

	task, err := u.repo.Update(ctx, repository.UpdateTaskInput{
		TaskID:      input.TaskID,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, taskID, userID string) error {
	if err := u.repo.Delete(ctx, taskID, userID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
