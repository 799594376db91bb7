package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/repository/base"
)

type TaskRepository struct {
	*base.Repository
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{Repository: base.NewRepository(pool)}
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `
		INSERT INTO tasks (shift_id, name, category, is_completed, completed_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		task.ShiftID,
		task.Name,
		task.Category,
		task.IsCompleted,
		task.CompletedAt,
	).Scan(&task.ID, &task.CreatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

// GetByID fetches a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	query := `
		SELECT id, shift_id, name, category, is_completed, completed_at, created_at
		FROM tasks
		WHERE id = $1
	`

	var task model.Task
	err := r.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.ShiftID,
		&task.Name,
		&task.Category,
		&task.IsCompleted,
		&task.CompletedAt,
		&task.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// GetByShiftID fetches the checklist of one shift.
func (r *TaskRepository) GetByShiftID(ctx context.Context, shiftID int64) ([]*model.Task, error) {
	query := `
		SELECT id, shift_id, name, category, is_completed, completed_at, created_at
		FROM tasks
		WHERE shift_id = $1
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("get tasks by shift: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		var task model.Task
		err := rows.Scan(
			&task.ID,
			&task.ShiftID,
			&task.Name,
			&task.Category,
			&task.IsCompleted,
			&task.CompletedAt,
			&task.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// SetCompletion updates a task's completion flag and timestamp together so
// the completed_at invariant cannot drift.
func (r *TaskRepository) SetCompletion(ctx context.Context, id int64, isCompleted bool, completedAt *time.Time) error {
	query := `
		UPDATE tasks
		SET is_completed = $1, completed_at = $2
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, isCompleted, completedAt, id)
	if err != nil {
		return fmt.Errorf("set task completion: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("task not found")
	}

	return nil
}
