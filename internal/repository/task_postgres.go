package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-api/internal/model"
)

type PostgresTaskRepository struct {
	db *sql.DB
}

func NewPostgresTask(db *sql.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, completed, status, due_date, priority)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, title, completed, status, due_date, priority, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), task.UserID, task.Title, task.Completed, task.Status, task.DueDate, task.Priority,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, userID, taskID string) (model.Task, error) {
	query := `
		SELECT id, user_id, title, completed, status, due_date, priority, created_at, updated_at
		FROM tasks
		WHERE id = $1 AND user_id = $2`

	row := r.db.QueryRowContext(ctx, query, taskID, userID)
	return scanTask(row)
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $1, completed = $2, status = $3, due_date = $4, priority = $5, updated_at = now()
		WHERE id = $6 AND user_id = $7
		RETURNING id, user_id, title, completed, status, due_date, priority, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query,
		task.Title, task.Completed, task.Status, task.DueDate, task.Priority, task.ID, task.UserID,
	)

	return scanTask(row)
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *PostgresTaskRepository) List(ctx context.Context, params model.TaskListParams) ([]model.Task, error) {
	query := `
		SELECT id, user_id, title, completed, status, due_date, priority, created_at, updated_at
		FROM tasks
		WHERE user_id = $1`
	args := []any{params.UserID}

	if params.Status != nil {
		query += " AND status = $2"
		args = append(args, string(*params.Status))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	if tasks == nil {
		tasks = []model.Task{}
	}

	return tasks, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTask(row scannable) (model.Task, error) {
	var t model.Task
	var dueDate sql.NullTime
	var priority sql.NullString
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Completed,
		&t.Status, &dueDate, &priority, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	if priority.Valid {
		p := model.TaskPriority(priority.String)
		t.Priority = &p
	}
	return t, nil
}

// ensure compile-time interface compliance
var _ TaskRepository = (*PostgresTaskRepository)(nil)
