package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/zordhalo/managment-site/internal/model"
	"go.uber.org/zap"
)

// In-memory fakes for the store interfaces. They keep the same not-found
// conventions as the pgx repositories: (nil, nil) for missing single reads.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) add(user *model.User) *model.User {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return fmt.Errorf("duplicate user")
		}
	}
	f.add(user)
	user.CreatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByRole(_ context.Context, role model.Role) ([]*model.User, error) {
	var users []*model.User
	for _, user := range f.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeRoomRepo struct {
	rooms  map[int64]*model.Room
	nextID int64
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[int64]*model.Room)}
}

func (f *fakeRoomRepo) add(room *model.Room) *model.Room {
	f.nextID++
	room.ID = f.nextID
	f.rooms[room.ID] = room
	return room
}

func (f *fakeRoomRepo) Create(_ context.Context, room *model.Room) error {
	f.add(room)
	room.CreatedAt = time.Now()
	return nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*model.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomRepo) GetAll(_ context.Context, activeOnly bool) ([]*model.Room, error) {
	var rooms []*model.Room
	for _, room := range f.rooms {
		if activeOnly && !room.IsActive {
			continue
		}
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *model.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return fmt.Errorf("room not found")
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) Deactivate(_ context.Context, id int64) error {
	room, ok := f.rooms[id]
	if !ok {
		return fmt.Errorf("room not found")
	}
	room.IsActive = false
	return nil
}

type fakeBookingRepo struct {
	bookings map[int64]*model.Booking
	nextID   int64
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*model.Booking)}
}

func (f *fakeBookingRepo) add(booking *model.Booking) *model.Booking {
	f.nextID++
	booking.ID = f.nextID
	f.bookings[booking.ID] = booking
	return booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	f.add(booking)
	booking.CreatedAt = time.Now()
	return nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, userID int64) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			bookings = append(bookings, booking)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })
	return bookings, nil
}

func (f *fakeBookingRepo) GetBlockingByRoom(_ context.Context, roomID int64) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for _, booking := range f.bookings {
		if booking.RoomID == roomID && booking.Blocks() {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (f *fakeBookingRepo) GetAll(_ context.Context, status model.BookingStatus) ([]*model.Booking, error) {
	var bookings []*model.Booking
	for _, booking := range f.bookings {
		if status != "" && booking.Status != status {
			continue
		}
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID > bookings[j].ID })
	return bookings, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status model.BookingStatus) error {
	booking, ok := f.bookings[id]
	if !ok {
		return fmt.Errorf("booking not found")
	}
	booking.Status = status
	return nil
}

type fakeShiftRepo struct {
	shifts map[int64]*model.Shift
	nextID int64
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[int64]*model.Shift)}
}

func (f *fakeShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	f.nextID++
	shift.ID = f.nextID
	shift.CreatedAt = time.Now()
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id int64) (*model.Shift, error) {
	return f.shifts[id], nil
}

func (f *fakeShiftRepo) GetByEmployeeID(_ context.Context, employeeID int64) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for _, shift := range f.shifts {
		if shift.EmployeeID == employeeID && shift.IsActive {
			shifts = append(shifts, shift)
		}
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ID < shifts[j].ID })
	return shifts, nil
}

func (f *fakeShiftRepo) GetByRoomAndDate(_ context.Context, roomID int64, date time.Time) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for _, shift := range f.shifts {
		if shift.RoomID == roomID && shift.Date.Equal(date) && shift.IsActive {
			shifts = append(shifts, shift)
		}
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ID < shifts[j].ID })
	return shifts, nil
}

func (f *fakeShiftRepo) GetAll(_ context.Context, date *time.Time) ([]*model.Shift, error) {
	var shifts []*model.Shift
	for _, shift := range f.shifts {
		if !shift.IsActive {
			continue
		}
		if date != nil && !shift.Date.Equal(*date) {
			continue
		}
		shifts = append(shifts, shift)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].ID < shifts[j].ID })
	return shifts, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, shift *model.Shift) error {
	if _, ok := f.shifts[shift.ID]; !ok {
		return fmt.Errorf("shift not found")
	}
	f.shifts[shift.ID] = shift
	return nil
}

func (f *fakeShiftRepo) Deactivate(_ context.Context, id int64) error {
	shift, ok := f.shifts[id]
	if !ok {
		return fmt.Errorf("shift not found")
	}
	shift.IsActive = false
	return nil
}

type fakeTaskRepo struct {
	tasks  map[int64]*model.Task
	nextID int64

	// failNames makes Create fail for tasks with these names, to exercise
	// the partial-expansion path.
	failNames map[string]bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*model.Task), failNames: make(map[string]bool)}
}

func (f *fakeTaskRepo) Create(_ context.Context, task *model.Task) error {
	if f.failNames[task.Name] {
		return fmt.Errorf("store unavailable")
	}
	f.nextID++
	task.ID = f.nextID
	task.CreatedAt = time.Now()
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64) (*model.Task, error) {
	return f.tasks[id], nil
}

func (f *fakeTaskRepo) GetByShiftID(_ context.Context, shiftID int64) ([]*model.Task, error) {
	var tasks []*model.Task
	for _, task := range f.tasks {
		if task.ShiftID == shiftID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (f *fakeTaskRepo) SetCompletion(_ context.Context, id int64, isCompleted bool, completedAt *time.Time) error {
	task, ok := f.tasks[id]
	if !ok {
		return fmt.Errorf("task not found")
	}
	task.IsCompleted = isCompleted
	task.CompletedAt = completedAt
	return nil
}

type fakeTemplateRepo struct {
	templates map[int64]*model.TaskTemplate
	nextID    int64
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: make(map[int64]*model.TaskTemplate)}
}

func (f *fakeTemplateRepo) Create(_ context.Context, tpl *model.TaskTemplate) error {
	f.nextID++
	tpl.ID = f.nextID
	tpl.CreatedAt = time.Now()
	f.templates[tpl.ID] = tpl
	return nil
}

func (f *fakeTemplateRepo) GetByID(_ context.Context, id int64) (*model.TaskTemplate, error) {
	return f.templates[id], nil
}

func (f *fakeTemplateRepo) GetAll(_ context.Context) ([]*model.TaskTemplate, error) {
	var templates []*model.TaskTemplate
	for _, tpl := range f.templates {
		templates = append(templates, tpl)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

func (f *fakeTemplateRepo) GetDefaults(_ context.Context) ([]*model.TaskTemplate, error) {
	var templates []*model.TaskTemplate
	for _, tpl := range f.templates {
		if tpl.IsDefault {
			templates = append(templates, tpl)
		}
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].ID < templates[j].ID })
	return templates, nil
}

func (f *fakeTemplateRepo) Update(_ context.Context, tpl *model.TaskTemplate) error {
	if _, ok := f.templates[tpl.ID]; !ok {
		return fmt.Errorf("template not found")
	}
	f.templates[tpl.ID] = tpl
	return nil
}

func (f *fakeTemplateRepo) ClearDefault(_ context.Context, id int64) error {
	tpl, ok := f.templates[id]
	if !ok {
		return fmt.Errorf("template not found")
	}
	tpl.IsDefault = false
	return nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
	nextID        int64

	// failures makes the next N Create calls fail, to exercise the retry
	// path.
	failures int
	attempts int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("store unavailable")
	}
	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = time.Now()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*model.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) GetByUserID(_ context.Context, userID int64) ([]*model.Notification, error) {
	var notifications []*model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
	return notifications, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("notification not found")
}

// forUser filters recorded notifications by recipient, insertion order.
func (f *fakeNotificationRepo) forUser(userID int64) []*model.Notification {
	var notifications []*model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	return notifications
}

// testEnv wires every service over the fakes, with a fixed clock.
type testEnv struct {
	users         *fakeUserRepo
	rooms         *fakeRoomRepo
	bookings      *fakeBookingRepo
	shifts        *fakeShiftRepo
	tasks         *fakeTaskRepo
	templates     *fakeTemplateRepo
	notifications *fakeNotificationRepo

	notifier *NotificationService
	booking  *BookingService
	shift    *ShiftService
	user     *UserService

	now time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		users:         newFakeUserRepo(),
		rooms:         newFakeRoomRepo(),
		bookings:      newFakeBookingRepo(),
		shifts:        newFakeShiftRepo(),
		tasks:         newFakeTaskRepo(),
		templates:     newFakeTemplateRepo(),
		notifications: newFakeNotificationRepo(),
		now:           time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	}

	logger := zap.NewNop()
	env.notifier = NewNotificationService(env.notifications, env.users, env.rooms, env.shifts, logger)

	env.booking = NewBookingService(env.users, env.rooms, env.bookings, env.notifier, logger)
	env.booking.now = func() time.Time { return env.now }
	env.booking.newQRCode = func() string { return "test-qr-code" }

	env.shift = NewShiftService(env.users, env.rooms, env.shifts, env.tasks, env.templates, env.notifier, logger)
	env.shift.now = func() time.Time { return env.now }

	env.user = NewUserService(env.users, logger)

	return env
}

func (env *testEnv) addUser(username string, role model.Role) *model.User {
	return env.users.add(&model.User{
		Username: username,
		FullName: username,
		Email:    username + "@example.com",
		Role:     role,
	})
}

func (env *testEnv) addRoom(name string) *model.Room {
	return env.rooms.add(&model.Room{
		Name:       name,
		Capacity:   4,
		HourlyRate: 12,
		IsActive:   true,
	})
}

// at builds a timestamp on the env's reference day.
func (env *testEnv) at(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.UTC)
}
