package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
)

func TestCreateBooking(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	room := env.addRoom("PS5 Lounge")

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, "test-qr-code", booking.QRCode)
	assert.Equal(t, player.ID, booking.UserID)
	assert.Equal(t, room.ID, booking.RoomID)

	supervisorNotes := env.notifications.forUser(supervisor.ID)
	require.Len(t, supervisorNotes, 1)
	assert.Contains(t, supervisorNotes[0].Message, "awaits approval")
	assert.Contains(t, supervisorNotes[0].Message, "PS5 Lounge")
	assert.Equal(t, model.NotificationTypeBooking, supervisorNotes[0].Type)

	ownerNotes := env.notifications.forUser(player.ID)
	require.Len(t, ownerNotes, 1)
	assert.Contains(t, ownerNotes[0].Message, "pending confirmation")
}

func TestCreateBookingValidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	employee := env.addUser("worker", model.RoleEmployee)
	room := env.addRoom("VR Arena")
	closed := env.addRoom("Storage")
	closed.IsActive = false

	_, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(11, 0), env.at(10, 0))
	assert.True(t, apperr.IsValidation(err), "end before start")

	_, err = env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(11, 0), env.at(11, 0))
	assert.True(t, apperr.IsValidation(err), "zero-length interval")

	_, err = env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(7, 0), env.at(8, 0))
	assert.True(t, apperr.IsValidation(err), "start in the past")

	_, err = env.booking.CreateBooking(ctx, 999, room.ID, env.at(10, 0), env.at(11, 0))
	assert.True(t, apperr.IsNotFound(err), "unknown user")

	_, err = env.booking.CreateBooking(ctx, employee.ID, room.ID, env.at(10, 0), env.at(11, 0))
	assert.True(t, apperr.IsPermissionDenied(err), "employee cannot book")

	_, err = env.booking.CreateBooking(ctx, player.ID, 999, env.at(10, 0), env.at(11, 0))
	assert.True(t, apperr.IsNotFound(err), "unknown room")

	_, err = env.booking.CreateBooking(ctx, player.ID, closed.ID, env.at(10, 0), env.at(11, 0))
	assert.True(t, apperr.IsValidation(err), "inactive room")
}

func TestCreateBookingConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.addUser("alice", model.RolePlayer)
	bob := env.addUser("bob", model.RolePlayer)
	room := env.addRoom("Sim Racing")

	first, err := env.booking.CreateBooking(ctx, alice.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)
	first.Status = model.BookingStatusApproved

	// Overlapping request loses.
	_, err = env.booking.CreateBooking(ctx, bob.ID, room.ID, env.at(10, 30), env.at(11, 30))
	assert.True(t, apperr.IsConflict(err))
	assert.ErrorContains(t, err, "Sim Racing")

	// Abutting intervals do not overlap: [10,11) then [11,12) and [9,10).
	_, err = env.booking.CreateBooking(ctx, bob.ID, room.ID, env.at(11, 0), env.at(12, 0))
	assert.NoError(t, err)

	_, err = env.booking.CreateBooking(ctx, bob.ID, room.ID, env.at(9, 0), env.at(10, 0))
	assert.NoError(t, err)

	// A different room is unaffected.
	other := env.addRoom("Billiards")
	_, err = env.booking.CreateBooking(ctx, bob.ID, other.ID, env.at(10, 0), env.at(11, 0))
	assert.NoError(t, err)
}

func TestCreateBookingIgnoresFreedSlots(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	alice := env.addUser("alice", model.RolePlayer)
	bob := env.addUser("bob", model.RolePlayer)
	room := env.addRoom("Arcade")

	rejected, err := env.booking.CreateBooking(ctx, alice.ID, room.ID, env.at(14, 0), env.at(15, 0))
	require.NoError(t, err)
	rejected.Status = model.BookingStatusRejected

	cancelled, err := env.booking.CreateBooking(ctx, alice.ID, room.ID, env.at(14, 0), env.at(15, 0))
	require.NoError(t, err)
	cancelled.Status = model.BookingStatusCancelled

	// Both terminal bookings freed the slot.
	_, err = env.booking.CreateBooking(ctx, bob.ID, room.ID, env.at(14, 0), env.at(15, 0))
	assert.NoError(t, err)
}

func mustTime(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.UTC)
}

func TestHasConflictContainment(t *testing.T) {
	wide := &model.Booking{
		Status:    model.BookingStatusApproved,
		StartTime: mustTime(10, 0),
		EndTime:   mustTime(14, 0),
	}

	// Candidate entirely inside the existing interval, and the reverse.
	assert.True(t, hasConflict(mustTime(11, 0), mustTime(12, 0), []*model.Booking{wide}))

	narrow := &model.Booking{
		Status:    model.BookingStatusApproved,
		StartTime: mustTime(11, 0),
		EndTime:   mustTime(12, 0),
	}
	assert.True(t, hasConflict(mustTime(10, 0), mustTime(14, 0), []*model.Booking{narrow}))
}

func TestUpdateBookingStatus(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	other := env.addUser("other", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	room := env.addRoom("PS5 Lounge")

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	// Players cannot approve.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, player, model.BookingStatusApproved)
	assert.True(t, apperr.IsPermissionDenied(err))

	// Pending cannot go straight to completed.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusCompleted)
	assert.True(t, apperr.IsInvalidTransition(err))

	// Nothing goes back to pending.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusPending)
	assert.True(t, apperr.IsValidation(err))

	updated, err := env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusApproved, updated.Status)

	// Only the owner cancels.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, other, model.BookingStatusCancelled)
	assert.True(t, apperr.IsPermissionDenied(err))

	// Completing before the slot ends is refused.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusCompleted)
	assert.True(t, apperr.IsValidation(err))

	env.now = env.at(11, 30)
	completed, err := env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, completed.Status)

	// Completed is terminal.
	_, err = env.booking.UpdateStatus(ctx, booking.ID, player, model.BookingStatusCancelled)
	assert.True(t, apperr.IsInvalidTransition(err))

	_, err = env.booking.UpdateStatus(ctx, 999, supervisor, model.BookingStatusApproved)
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateStatusNotifiesOwner(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	room := env.addRoom("VR Arena")

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	before := len(env.notifications.forUser(player.ID))

	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusRejected)
	require.NoError(t, err)

	notes := env.notifications.forUser(player.ID)
	require.Len(t, notes, before+1)
	assert.Contains(t, notes[len(notes)-1].Message, "is now rejected")
}

func TestApprovalNotifiesShiftEmployee(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	onShift := env.addUser("worker", model.RoleEmployee)
	offShift := env.addUser("other-worker", model.RoleEmployee)
	room := env.addRoom("Sim Racing")

	covering, err := env.shift.CreateShift(ctx, onShift.ID, room.ID, env.at(0, 0), env.at(9, 0), env.at(17, 0))
	require.NoError(t, err)
	_, err = env.shift.CreateShift(ctx, offShift.ID, room.ID, env.at(0, 0), env.at(17, 0), env.at(23, 0))
	require.NoError(t, err)

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusApproved)
	require.NoError(t, err)

	// The covering shift's employee gets exactly one approval notice on top
	// of the shift-created one; the evening shift's employee gets none.
	onShiftNotes := env.notifications.forUser(onShift.ID)
	require.Len(t, onShiftNotes, 2)
	assert.Contains(t, onShiftNotes[1].Message, "during your shift")
	assert.Contains(t, onShiftNotes[1].Message, covering.Date.Format("2006-01-02"))
	assert.Equal(t, model.NotificationTypeShift, onShiftNotes[1].Type)

	assert.Len(t, env.notifications.forUser(offShift.ID), 1)
}

func TestApprovalNotifiesShiftEmployeeWithOffsetTimestamp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	employee := env.addUser("worker", model.RoleEmployee)
	room := env.addRoom("PS5 Lounge")

	_, err := env.shift.CreateShift(ctx, employee.ID, room.ID, env.at(0, 0), env.at(9, 0), env.at(17, 0))
	require.NoError(t, err)

	// Same day and inside the shift in every zone: 13:00+03:00 is 10:00 UTC.
	offset := time.FixedZone("UTC+3", 3*60*60)
	start := time.Date(2026, time.March, 14, 13, 0, 0, 0, offset)
	end := time.Date(2026, time.March, 14, 14, 0, 0, 0, offset)

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, start, end)
	require.NoError(t, err)

	_, err = env.booking.UpdateStatus(ctx, booking.ID, supervisor, model.BookingStatusApproved)
	require.NoError(t, err)

	notes := env.notifications.forUser(employee.ID)
	require.Len(t, notes, 2)
	assert.Contains(t, notes[1].Message, "during your shift")
}

func TestCreateShiftNormalizesDateToUTC(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	employee := env.addUser("worker", model.RoleEmployee)
	room := env.addRoom("Arcade")

	offset := time.FixedZone("UTC-5", -5*60*60)
	date := time.Date(2026, time.March, 14, 8, 30, 0, 0, offset)

	shift, err := env.shift.CreateShift(ctx, employee.ID, room.ID, date, env.at(9, 0), env.at(17, 0))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), shift.Date)
}

func TestGetBookingAccess(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	other := env.addUser("other", model.RolePlayer)
	supervisor := env.addUser("boss", model.RoleSupervisor)
	room := env.addRoom("Arcade")

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	_, err = env.booking.GetByID(ctx, booking.ID, player)
	assert.NoError(t, err)

	_, err = env.booking.GetByID(ctx, booking.ID, supervisor)
	assert.NoError(t, err)

	_, err = env.booking.GetByID(ctx, booking.ID, other)
	assert.True(t, apperr.IsPermissionDenied(err))
}

func TestListAllRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv()

	_, err := env.booking.ListAll(context.Background(), model.BookingStatus("archived"))
	assert.True(t, apperr.IsValidation(err))

	_, err = env.booking.ListAll(context.Background(), "")
	assert.NoError(t, err)
}
