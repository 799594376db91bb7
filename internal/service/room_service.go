package service

import (
	"context"
	"fmt"

	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
)

type RoomService struct {
	roomRepo RoomRepository
	logger   *zap.Logger
}

func NewRoomService(roomRepo RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{roomRepo: roomRepo, logger: logger}
}

func validateRoom(room *model.Room) error {
	if room.Name == "" {
		return apperr.Validation("room name is required")
	}
	if room.Capacity <= 0 {
		return apperr.Validation("room capacity must be positive")
	}
	if room.HourlyRate <= 0 {
		return apperr.Validation("room hourly rate must be positive")
	}
	return nil
}

// CreateRoom adds a new bookable room.
func (s *RoomService) CreateRoom(ctx context.Context, room *model.Room) (*model.Room, error) {
	if err := validateRoom(room); err != nil {
		return nil, err
	}

	room.IsActive = true

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.logger.Info("Room created",
		zap.Int64("room_id", room.ID),
		zap.String("name", room.Name),
		zap.Int("capacity", room.Capacity),
	)

	return room, nil
}

// GetRoom fetches one room.
func (s *RoomService) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room == nil {
		return nil, apperr.NotFound("room", id)
	}

	return room, nil
}

// ListRooms returns all rooms, optionally only active ones.
func (s *RoomService) ListRooms(ctx context.Context, activeOnly bool) ([]*model.Room, error) {
	return s.roomRepo.GetAll(ctx, activeOnly)
}

// UpdateRoom rewrites a room's fields.
func (s *RoomService) UpdateRoom(ctx context.Context, room *model.Room) (*model.Room, error) {
	if err := validateRoom(room); err != nil {
		return nil, err
	}

	existing, err := s.roomRepo.GetByID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if existing == nil {
		return nil, apperr.NotFound("room", room.ID)
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}

	s.logger.Info("Room updated", zap.Int64("room_id", room.ID))

	return room, nil
}

// DeactivateRoom flags a room inactive; its rows and booking history stay.
func (s *RoomService) DeactivateRoom(ctx context.Context, id int64) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get room: %w", err)
	}

	if room == nil {
		return apperr.NotFound("room", id)
	}

	if err := s.roomRepo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate room: %w", err)
	}

	s.logger.Info("Room deactivated", zap.Int64("room_id", id))

	return nil
}
