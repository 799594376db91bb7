package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zordhalo/managment-site/internal/apperr"
	"github.com/zordhalo/managment-site/internal/model"
)

func TestMarkRead(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	other := env.addUser("other", model.RolePlayer)
	room := env.addRoom("Arcade")

	_, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	notes := env.notifications.forUser(player.ID)
	require.Len(t, notes, 1)
	note := notes[0]
	require.False(t, note.IsRead)

	_, err = env.notifier.MarkRead(ctx, note.ID, other)
	assert.True(t, apperr.IsPermissionDenied(err))
	assert.False(t, note.IsRead)

	read, err := env.notifier.MarkRead(ctx, note.ID, player)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	// Marking again is a no-op.
	again, err := env.notifier.MarkRead(ctx, note.ID, player)
	require.NoError(t, err)
	assert.True(t, again.IsRead)

	_, err = env.notifier.MarkRead(ctx, 999, player)
	assert.True(t, apperr.IsNotFound(err))
}

func TestEmitRetriesTransientFailures(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	room := env.addRoom("VR Arena")

	// The first two writes fail, the retry loop absorbs them.
	env.notifications.failures = 2

	_, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)

	notes := env.notifications.forUser(player.ID)
	require.Len(t, notes, 1)
	assert.GreaterOrEqual(t, env.notifications.attempts, 3)
}

func TestEmitFailureNeverFailsTheTrigger(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	player := env.addUser("player", model.RolePlayer)
	room := env.addRoom("Sim Racing")

	// More failures than the retry budget: the notification is dropped but
	// the booking still succeeds.
	env.notifications.failures = 100

	booking, err := env.booking.CreateBooking(ctx, player.ID, room.ID, env.at(10, 0), env.at(11, 0))
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Empty(t, env.notifications.forUser(player.ID))
}

func TestRoomNameFallsBackToID(t *testing.T) {
	env := newTestEnv()

	name := env.notifier.roomName(context.Background(), 42)
	assert.Equal(t, "room 42", name)
}
