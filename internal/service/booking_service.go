package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
)

type BookingService struct {
	userRepo    UserRepository
	roomRepo    RoomRepository
	bookingRepo BookingRepository
	notifier    *NotificationService
	logger      *zap.Logger

	// injectable for tests
	now       func() time.Time
	newQRCode func() string
}

func NewBookingService(
	userRepo UserRepository,
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	notifier *NotificationService,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
		newQRCode:   uuid.NewString,
	}
}

// hasConflict reports whether the candidate half-open interval [start, end)
// overlaps any blocking booking. The caller pre-filters the set by room.
func hasConflict(start, end time.Time, existing []*model.Booking) bool {
	for _, b := range existing {
		if b.Blocks() && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// CreateBooking books a room for a player. The new booking starts pending
// with a freshly generated QR code. The advisory conflict check runs before
// the insert; the bookings table's exclusion constraint covers the window
// between check and write.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int64, startTime, endTime time.Time) (*model.Booking, error) {
	if !endTime.After(startTime) {
		return nil, apperr.Validation("end time must be after start time")
	}

	if startTime.Before(s.now()) {
		return nil, apperr.Validation("cannot create booking in the past")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	if user.Role != model.RolePlayer {
		return nil, apperr.PermissionDenied("only players can book rooms")
	}

	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if room == nil {
		return nil, apperr.NotFound("room", roomID)
	}

	if !room.IsActive {
		return nil, apperr.Validation("room %d is not active", roomID)
	}

	existing, err := s.bookingRepo.GetBlockingByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get blocking bookings: %w", err)
	}

	if hasConflict(startTime, endTime, existing) {
		return nil, apperr.Conflict("room %q is already booked for the requested time slot", room.Name)
	}

	booking := &model.Booking{
		UserID:    userID,
		RoomID:    roomID,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    model.BookingStatusPending,
		QRCode:    s.newQRCode(),
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("room_id", roomID),
		zap.Time("start_time", startTime),
		zap.Time("end_time", endTime),
	)

	s.notifier.BookingCreated(ctx, booking)

	booking.Room = room
	return booking, nil
}

// UpdateStatus transitions a booking. Supervisors approve, reject and
// complete; the owning player cancels. The transition table in the model is
// binding; anything else is an InvalidTransition.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID int64, actor *model.User, newStatus model.BookingStatus) (*model.Booking, error) {
	if !newStatus.Valid() {
		return nil, apperr.Validation("unknown booking status %q", newStatus)
	}

	if newStatus == model.BookingStatusPending {
		return nil, apperr.Validation("bookings cannot be reset to pending")
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if booking == nil {
		return nil, apperr.NotFound("booking", bookingID)
	}

	if newStatus == model.BookingStatusCancelled {
		if booking.UserID != actor.ID {
			return nil, apperr.PermissionDenied("only the booking's owner can cancel it")
		}
	} else if !actor.IsSupervisor() {
		return nil, apperr.PermissionDenied("only supervisors can set a booking to %s", newStatus)
	}

	if !booking.Status.CanTransitionTo(newStatus) {
		return nil, apperr.InvalidTransition(string(booking.Status), string(newStatus))
	}

	if newStatus == model.BookingStatusCompleted && s.now().Before(booking.EndTime) {
		return nil, apperr.Validation("booking %d has not finished yet", bookingID)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}

	booking.Status = newStatus

	s.logger.Info("Booking status changed",
		zap.Int64("booking_id", bookingID),
		zap.Int64("actor_id", actor.ID),
		zap.String("status", string(newStatus)),
	)

	s.notifier.BookingStatusChanged(ctx, booking)

	return booking, nil
}

// GetByID fetches a booking readable by the actor: the owner or any
// supervisor.
func (s *BookingService) GetByID(ctx context.Context, bookingID int64, actor *model.User) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	if booking == nil {
		return nil, apperr.NotFound("booking", bookingID)
	}

	if booking.UserID != actor.ID && !actor.IsSupervisor() {
		return nil, apperr.PermissionDenied("booking %d does not belong to you", bookingID)
	}

	return booking, nil
}

// ListForUser returns a player's own bookings, newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]*model.Booking, error) {
	return s.bookingRepo.GetByUserID(ctx, userID)
}

// ListAll returns every booking, optionally filtered by status.
func (s *BookingService) ListAll(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("unknown booking status %q", status)
	}
	return s.bookingRepo.GetAll(ctx, status)
}
