package repository

import (
	"context"

	"github.com/akylbekov/task-tracker/internal/domain"
)

type UpdateProfileInput struct {
	UserID string
	Name   *string
	Email  *string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}
