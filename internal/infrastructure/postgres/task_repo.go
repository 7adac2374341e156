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

type TaskRepository struct {
	pool Pool
}

func NewTaskRepository(pool Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, status, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, description, status, priority, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		task.UserID,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
	)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, status, priority, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	return scanTask(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	args := []any{input.UserID}
	where := []string{"user_id = $1"}

	if input.Status != "" {
		args = append(args, input.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.Priority != "" {
		args = append(args, input.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	if input.Search != "" {
		args = append(args, "%"+input.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, status, priority, created_at, updated_at
		FROM tasks
		WHERE %s
		ORDER BY created_at DESC`,
		strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update only touches the supplied fields. The user_id predicate makes a
// foreign task indistinguishable from a missing one.
func (r *TaskRepository) Update(ctx context.Context, input repository.UpdateTaskInput) (*domain.Task, error) {
	var sets []string
	args := []any{input.TaskID, input.UserID}

	if input.Title != nil {
		args = append(args, *input.Title)
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.Status != nil {
		args = append(args, *input.Status)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.Priority != nil {
		args = append(args, *input.Priority)
		sets = append(sets, fmt.Sprintf("priority = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil, domain.ErrNoFieldsToUpdate
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE tasks
		SET %s
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description, status, priority, created_at, updated_at`,
		strings.Join(sets, ", "))

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
