package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akylbekov/task-tracker/internal/domain"
	"github.com/akylbekov/task-tracker/internal/repository"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	pool Pool
}

func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// UpdateProfile mutates only the supplied fields. The unique index on email is
// the enforcement point for concurrent updates; a 23505 maps to ErrEmailTaken.
func (r *UserRepository) UpdateProfile(ctx context.Context, input repository.UpdateProfileInput) (*domain.User, error) {
	var sets []string
	args := []any{input.UserID}

	if input.Name != nil {
		args = append(args, *input.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if input.Email != nil {
		args = append(args, *input.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1
		RETURNING id, name, email, password_hash, created_at, updated_at`,
		strings.Join(sets, ", "))

	updated, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	return updated, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
