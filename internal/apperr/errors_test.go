package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsConflict(Conflict("slot taken")))
	assert.True(t, IsNotFound(NotFound("room", 3)))
	assert.True(t, IsPermissionDenied(PermissionDenied("no")))
	assert.True(t, IsInvalidTransition(InvalidTransition("completed", "pending")))

	assert.False(t, IsConflict(Validation("bad input")))
	assert.False(t, IsValidation(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Conflict("slot taken"))
	assert.True(t, IsConflict(err))
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, NotFound("booking", 12), "booking 12 not found")
	assert.EqualError(t, InvalidTransition("completed", "pending"),
		"cannot change status from completed to pending")
	assert.EqualError(t, Validation("room %d is not active", 4), "room 4 is not active")

	wrapped := &Error{Kind: KindValidation, Message: "bad row", Err: errors.New("scan failed")}
	assert.EqualError(t, wrapped, "bad row: scan failed")
	assert.EqualError(t, errors.Unwrap(wrapped), "scan failed")
}
