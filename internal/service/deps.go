package service

import (
	"context"
	"time"

	"github.com/zordhalo/managment-site/internal/model"
)

// The services depend on narrow store interfaces rather than the concrete
// pgx repositories so that the booking, expansion and notification logic is
// testable against in-memory fakes. internal/repository satisfies all of
// them.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	CountAll(ctx context.Context) (int64, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id int64) (*model.Room, error)
	GetAll(ctx context.Context, activeOnly bool) ([]*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Deactivate(ctx context.Context, id int64) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error)
	GetBlockingByRoom(ctx context.Context, roomID int64) ([]*model.Booking, error)
	GetAll(ctx context.Context, status model.BookingStatus) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error
}

type ShiftRepository interface {
	Create(ctx context.Context, shift *model.Shift) error
	GetByID(ctx context.Context, id int64) (*model.Shift, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) ([]*model.Shift, error)
	GetByRoomAndDate(ctx context.Context, roomID int64, date time.Time) ([]*model.Shift, error)
	GetAll(ctx context.Context, date *time.Time) ([]*model.Shift, error)
	Update(ctx context.Context, shift *model.Shift) error
	Deactivate(ctx context.Context, id int64) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id int64) (*model.Task, error)
	GetByShiftID(ctx context.Context, shiftID int64) ([]*model.Task, error)
	SetCompletion(ctx context.Context, id int64, isCompleted bool, completedAt *time.Time) error
}

type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.TaskTemplate) error
	GetByID(ctx context.Context, id int64) (*model.TaskTemplate, error)
	GetAll(ctx context.Context) ([]*model.TaskTemplate, error)
	GetDefaults(ctx context.Context) ([]*model.TaskTemplate, error)
	Update(ctx context.Context, tpl *model.TaskTemplate) error
	ClearDefault(ctx context.Context, id int64) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id int64) (*model.Notification, error)
	GetByUserID(ctx context.Context, userID int64) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}
