package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// NotificationService turns entity transitions into notification records.
// Delivery to the user is a frontend concern; this service only writes the
// rows. Write failures are retried with backoff and then logged; they never
// fail the operation that triggered them.
type NotificationService struct {
	notificationRepo NotificationRepository
	userRepo         UserRepository
	roomRepo         RoomRepository
	shiftRepo        ShiftRepository
	logger           *zap.Logger
}

func NewNotificationService(
	notificationRepo NotificationRepository,
	userRepo UserRepository,
	roomRepo RoomRepository,
	shiftRepo ShiftRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		roomRepo:         roomRepo,
		shiftRepo:        shiftRepo,
		logger:           logger,
	}
}

// BookingCreated notifies every supervisor about the new booking and the
// owner about its pending confirmation.
func (s *NotificationService) BookingCreated(ctx context.Context, booking *model.Booking) {
	roomName := s.roomName(ctx, booking.RoomID)

	supervisors, err := s.userRepo.GetByRole(ctx, model.RoleSupervisor)
	if err != nil {
		s.logger.Error("Failed to load supervisors for booking notification",
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}

	for _, supervisor := range supervisors {
		s.emit(ctx, &model.Notification{
			UserID:  supervisor.ID,
			Message: fmt.Sprintf("New booking #%d for %s awaits approval", booking.ID, roomName),
			Type:    model.NotificationTypeBooking,
		})
	}

	s.emit(ctx, &model.Notification{
		UserID:  booking.UserID,
		Message: fmt.Sprintf("Your booking #%d for %s is pending confirmation", booking.ID, roomName),
		Type:    model.NotificationTypeBooking,
	})
}

// BookingStatusChanged notifies the booking's owner with the new status
// verbatim. When the booking was approved, employees whose shift covers the
// booking start in the same room are additionally notified.
func (s *NotificationService) BookingStatusChanged(ctx context.Context, booking *model.Booking) {
	s.emit(ctx, &model.Notification{
		UserID:  booking.UserID,
		Message: fmt.Sprintf("Your booking #%d is now %s", booking.ID, booking.Status),
		Type:    model.NotificationTypeBooking,
	})

	if booking.Status != model.BookingStatusApproved {
		return
	}

	// Shift dates are stored as UTC days; the booking start may carry any
	// zone offset, so normalize before truncating.
	date := truncateToDay(booking.StartTime.UTC())
	shifts, err := s.shiftRepo.GetByRoomAndDate(ctx, booking.RoomID, date)
	if err != nil {
		s.logger.Error("Failed to load shifts for approval notification",
			zap.Int64("booking_id", booking.ID),
			zap.Int64("room_id", booking.RoomID),
			zap.Error(err))
		return
	}

	roomName := s.roomName(ctx, booking.RoomID)
	for _, shift := range shifts {
		if !shift.Covers(booking.StartTime) {
			continue
		}
		s.emit(ctx, &model.Notification{
			UserID: shift.EmployeeID,
			Message: fmt.Sprintf("Booking #%d was approved for %s during your shift on %s",
				booking.ID, roomName, shift.Date.Format(dateLayout)),
			Type: model.NotificationTypeShift,
		})
	}
}

// ShiftCreated notifies the assigned employee.
func (s *NotificationService) ShiftCreated(ctx context.Context, shift *model.Shift) {
	s.emit(ctx, &model.Notification{
		UserID: shift.EmployeeID,
		Message: fmt.Sprintf("You have a new shift in %s on %s",
			s.roomName(ctx, shift.RoomID), shift.Date.Format(dateLayout)),
		Type: model.NotificationTypeShift,
	})
}

// ShiftReassigned notifies the new assignee. The displaced employee is not
// notified.
func (s *NotificationService) ShiftReassigned(ctx context.Context, shift *model.Shift) {
	s.emit(ctx, &model.Notification{
		UserID: shift.EmployeeID,
		Message: fmt.Sprintf("You have been assigned a shift in %s on %s",
			s.roomName(ctx, shift.RoomID), shift.Date.Format(dateLayout)),
		Type: model.NotificationTypeShift,
	})
}

// TaskCompleted notifies every supervisor that a checklist item was done.
func (s *NotificationService) TaskCompleted(ctx context.Context, task *model.Task, shift *model.Shift) {
	supervisors, err := s.userRepo.GetByRole(ctx, model.RoleSupervisor)
	if err != nil {
		s.logger.Error("Failed to load supervisors for task notification",
			zap.Int64("task_id", task.ID),
			zap.Error(err))
		return
	}

	roomName := s.roomName(ctx, shift.RoomID)
	for _, supervisor := range supervisors {
		s.emit(ctx, &model.Notification{
			UserID:  supervisor.ID,
			Message: fmt.Sprintf("Task %q completed in %s", task.Name, roomName),
			Type:    model.NotificationTypeSystem,
		})
	}
}

// ListForUser returns a recipient's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	return s.notificationRepo.GetByUserID(ctx, userID)
}

// MarkRead flips a notification to read. Only the recipient may do so, and
// re-reading an already-read notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id int64, actor *model.User) (*model.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}

	if n == nil {
		return nil, apperr.NotFound("notification", id)
	}

	if n.UserID != actor.ID {
		return nil, apperr.PermissionDenied("notification %d does not belong to you", id)
	}

	if n.IsRead {
		return n, nil
	}

	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}

	n.IsRead = true
	return n, nil
}

// emit writes one notification record, retrying transient store failures.
// A write that still fails after the retries is logged and dropped so the
// triggering operation keeps its own success.
func (s *NotificationService) emit(ctx context.Context, n *model.Notification) {
	backoff := retry.WithMaxRetries(3, retry.NewExponential(100*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.notificationRepo.Create(ctx, n); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Failed to write notification",
			zap.Int64("user_id", n.UserID),
			zap.String("type", string(n.Type)),
			zap.Error(err))
	}
}

func (s *NotificationService) roomName(ctx context.Context, roomID int64) string {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil || room == nil {
		return fmt.Sprintf("room %d", roomID)
	}
	return room.Name
}

// truncateToDay drops the time-of-day component, keeping the location.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
