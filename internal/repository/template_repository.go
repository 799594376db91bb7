package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/repository/base"
)

type TemplateRepository struct {
	*base.Repository
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{Repository: base.NewRepository(pool)}
}

// Create persists a new task template.
func (r *TemplateRepository) Create(ctx context.Context, tpl *model.TaskTemplate) error {
	query := `
		INSERT INTO task_templates (name, category, is_default)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, tpl.Name, tpl.Category, tpl.IsDefault).
		Scan(&tpl.ID, &tpl.CreatedAt)

	if err != nil {
		return fmt.Errorf("create task template: %w", err)
	}

	return nil
}

// GetByID fetches a template by ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*model.TaskTemplate, error) {
	query := `
		SELECT id, name, category, is_default, created_at
		FROM task_templates
		WHERE id = $1
	`

	var tpl model.TaskTemplate
	err := r.QueryRow(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.Category,
		&tpl.IsDefault,
		&tpl.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task template by id: %w", err)
	}

	return &tpl, nil
}

// GetAll fetches every task template.
func (r *TemplateRepository) GetAll(ctx context.Context) ([]*model.TaskTemplate, error) {
	query := `
		SELECT id, name, category, is_default, created_at
		FROM task_templates
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all task templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// GetDefaults fetches the templates applied to every new shift.
func (r *TemplateRepository) GetDefaults(ctx context.Context) ([]*model.TaskTemplate, error) {
	query := `
		SELECT id, name, category, is_default, created_at
		FROM task_templates
		WHERE is_default
		ORDER BY id
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get default task templates: %w", err)
	}
	defer rows.Close()

	return collectTemplates(rows)
}

// Update rewrites a template. Existing shifts keep the tasks they were
// expanded with.
func (r *TemplateRepository) Update(ctx context.Context, tpl *model.TaskTemplate) error {
	query := `
		UPDATE task_templates
		SET name = $1, category = $2, is_default = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, tpl.Name, tpl.Category, tpl.IsDefault, tpl.ID)
	if err != nil {
		return fmt.Errorf("update task template: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("task template not found")
	}

	return nil
}

// ClearDefault removes a template from the default set without deleting the
// row, so past expansions stay attributable.
func (r *TemplateRepository) ClearDefault(ctx context.Context, id int64) error {
	query := `
		UPDATE task_templates
		SET is_default = false
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("clear task template default: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("task template not found")
	}

	return nil
}

func collectTemplates(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]*model.TaskTemplate, error) {
	var templates []*model.TaskTemplate
	for rows.Next() {
		var tpl model.TaskTemplate
		err := rows.Scan(
			&tpl.ID,
			&tpl.Name,
			&tpl.Category,
			&tpl.IsDefault,
			&tpl.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task template: %w", err)
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return templates, nil
}
