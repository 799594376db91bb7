package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/repository/base"
)

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create persists a new booking. The bookings table enforces non-overlap of
// blocking bookings per room with an exclusion constraint; a violation is
// returned as a Conflict so the caller can surface "slot unavailable".
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (user_id, room_id, start_time, end_time, status, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.UserID,
		booking.RoomID,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.QRCode,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsExclusionViolation(err) {
			return apperr.Conflict("room %d is already booked for the requested time", booking.RoomID)
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID fetches a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, user_id, room_id, start_time, end_time, status, qr_code, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.QRCode,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// GetByUserID fetches all bookings owned by a user, newest first.
func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, user_id, room_id, start_time, end_time, status, qr_code, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by user: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// GetBlockingByRoom fetches the bookings that hold time slots in a room, i.e.
// everything except rejected and cancelled ones. This is the input set for
// the conflict check.
func (r *BookingRepository) GetBlockingByRoom(ctx context.Context, roomID int64) ([]*model.Booking, error) {
	query := `
		SELECT id, user_id, room_id, start_time, end_time, status, qr_code, created_at
		FROM bookings
		WHERE room_id = $1 AND status IN ('pending', 'approved', 'completed')
		ORDER BY start_time
	`

	rows, err := r.Query(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("get blocking bookings by room: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// GetAll fetches every booking, optionally filtered by status, newest first.
func (r *BookingRepository) GetAll(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	query := `
		SELECT id, user_id, room_id, start_time, end_time, status, qr_code, created_at
		FROM bookings
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`

	rows, err := r.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("get all bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// UpdateStatus updates a booking's status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $1
		WHERE id = $2
	`

	affected, err := r.ExecAffected(ctx, query, status, id)
	if err != nil {
		if base.IsExclusionViolation(err) {
			return apperr.Conflict("booking %d overlaps another booking in its room", id)
		}
		return fmt.Errorf("update booking status: %w", err)
	}

	if affected == 0 {
		return apperr.NotFound("booking", id)
	}

	return nil
}

func collectBookings(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.RoomID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.QRCode,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}
