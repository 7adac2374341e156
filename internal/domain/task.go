package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyName        = errors.New("name must not be empty")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
