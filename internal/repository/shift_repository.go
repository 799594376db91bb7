package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/repository/base"
)

type ShiftRepository struct {
	*base.Repository
}

func NewShiftRepository(pool *pgxpool.Pool) *ShiftRepository {
	return &ShiftRepository{Repository: base.NewRepository(pool)}
}

// Create persists a new shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	query := `
		INSERT INTO shifts (employee_id, room_id, date, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		shift.EmployeeID,
		shift.RoomID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.IsActive,
	).Scan(&shift.ID, &shift.CreatedAt)

	if err != nil {
		return fmt.Errorf("create shift: %w", err)
	}

	return nil
}

// GetByID fetches a shift by ID.
func (r *ShiftRepository) GetByID(ctx context.Context, id int64) (*model.Shift, error) {
	query := `
		SELECT id, employee_id, room_id, date, start_time, end_time, is_active, created_at
		FROM shifts
		WHERE id = $1
	`

	var shift model.Shift
	err := r.QueryRow(ctx, query, id).Scan(
		&shift.ID,
		&shift.EmployeeID,
		&shift.RoomID,
		&shift.Date,
		&shift.StartTime,
		&shift.EndTime,
		&shift.IsActive,
		&shift.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift by id: %w", err)
	}

	return &shift, nil
}

// GetByEmployeeID fetches all active shifts assigned to an employee.
func (r *ShiftRepository) GetByEmployeeID(ctx context.Context, employeeID int64) ([]*model.Shift, error) {
	query := `
		SELECT id, employee_id, room_id, date, start_time, end_time, is_active, created_at
		FROM shifts
		WHERE employee_id = $1 AND is_active
		ORDER BY date, start_time
	`

	rows, err := r.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get shifts by employee: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// GetByRoomAndDate fetches the active shifts scheduled in a room on a given
// calendar day.
func (r *ShiftRepository) GetByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*model.Shift, error) {
	query := `
		SELECT id, employee_id, room_id, date, start_time, end_time, is_active, created_at
		FROM shifts
		WHERE room_id = $1 AND date = $2 AND is_active
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, roomID, date)
	if err != nil {
		return nil, fmt.Errorf("get shifts by room and date: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// GetAll fetches every active shift, optionally limited to one calendar day.
func (r *ShiftRepository) GetAll(ctx context.Context, date *time.Time) ([]*model.Shift, error) {
	query := `
		SELECT id, employee_id, room_id, date, start_time, end_time, is_active, created_at
		FROM shifts
		WHERE is_active AND ($1::date IS NULL OR date = $1)
		ORDER BY date, start_time
	`

	rows, err := r.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("get all shifts: %w", err)
	}
	defer rows.Close()

	return collectShifts(rows)
}

// Update rewrites a shift's assignment and working interval.
func (r *ShiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	query := `
		UPDATE shifts
		SET employee_id = $1, room_id = $2, date = $3, start_time = $4, end_time = $5
		WHERE id = $6
	`

	affected, err := r.ExecAffected(
		ctx, query,
		shift.EmployeeID,
		shift.RoomID,
		shift.Date,
		shift.StartTime,
		shift.EndTime,
		shift.ID,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("shift not found")
	}

	return nil
}

// Deactivate flags a shift inactive. Shifts are never physically removed.
func (r *ShiftRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE shifts
		SET is_active = false
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate shift: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("shift not found")
	}

	return nil
}

func collectShifts(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for rows.Next() {
		var shift model.Shift
		err := rows.Scan(
			&shift.ID,
			&shift.EmployeeID,
			&shift.RoomID,
			&shift.Date,
			&shift.StartTime,
			&shift.EndTime,
			&shift.IsActive,
			&shift.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		shifts = append(shifts, &shift)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}

	return shifts, nil
}
