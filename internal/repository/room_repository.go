package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zordhalo/managment-site/internal/model"
	"github.com/zordhalo/managment-site/internal/repository/base"
)

type RoomRepository struct {
	*base.Repository
}

func NewRoomRepository(pool *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{Repository: base.NewRepository(pool)}
}

// Create persists a new room.
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, equipment, hourly_rate, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		room.Name,
		room.Capacity,
		room.Equipment,
		room.HourlyRate,
		room.Description,
		room.IsActive,
	).Scan(&room.ID, &room.CreatedAt)

	if err != nil {
		return fmt.Errorf("create room: %w", err)
	}

	return nil
}

// GetByID fetches a room by ID.
func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*model.Room, error) {
	query := `
		SELECT id, name, capacity, equipment, hourly_rate, description, is_active, created_at
		FROM rooms
		WHERE id = $1
	`

	var room model.Room
	err := r.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Capacity,
		&room.Equipment,
		&room.HourlyRate,
		&room.Description,
		&room.IsActive,
		&room.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by id: %w", err)
	}

	return &room, nil
}

// GetAll fetches all rooms, optionally only active ones.
func (r *RoomRepository) GetAll(ctx context.Context, activeOnly bool) ([]*model.Room, error) {
	query := `
		SELECT id, name, capacity, equipment, hourly_rate, description, is_active, created_at
		FROM rooms
		WHERE ($1 = false OR is_active)
		ORDER BY name
	`

	rows, err := r.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("get all rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*model.Room
	for rows.Next() {
		var room model.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Capacity,
			&room.Equipment,
			&room.HourlyRate,
			&room.Description,
			&room.IsActive,
			&room.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rooms: %w", err)
	}

	return rooms, nil
}

// Update rewrites a room's mutable fields.
func (r *RoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
		UPDATE rooms
		SET name = $1, capacity = $2, equipment = $3, hourly_rate = $4, description = $5, is_active = $6
		WHERE id = $7
	`

	affected, err := r.ExecAffected(
		ctx, query,
		room.Name,
		room.Capacity,
		room.Equipment,
		room.HourlyRate,
		room.Description,
		room.IsActive,
		room.ID,
	)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("room not found")
	}

	return nil
}

// Deactivate flags a room inactive. Rooms are never physically removed.
func (r *RoomRepository) Deactivate(ctx context.Context, id int64) error {
	query := `
		UPDATE rooms
		SET is_active = false
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate room: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("room not found")
	}

	return nil
}
