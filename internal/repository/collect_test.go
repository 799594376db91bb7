package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zordhalo/managment-site/internal/model"
)

// rowsStub mimics a result set that fails mid-stream: it yields n rows and
// then reports err from Err().
type rowsStub struct {
	n    int
	err  error
	scan func(dest ...any)
}

func (r *rowsStub) Next() bool {
	if r.n == 0 {
		return false
	}
	r.n--
	return true
}

func (r *rowsStub) Scan(dest ...any) error {
	if r.scan != nil {
		r.scan(dest...)
	}
	return nil
}

func (r *rowsStub) Err() error { return r.err }

func scanBookingStub(dest ...any) {
	*dest[0].(*int64) = 1
	*dest[1].(*int64) = 2
	*dest[2].(*int64) = 3
	*dest[3].(*time.Time) = time.Now()
	*dest[4].(*time.Time) = time.Now().Add(time.Hour)
	*dest[5].(*model.BookingStatus) = model.BookingStatusPending
	*dest[6].(*string) = "qr"
	*dest[7].(*time.Time) = time.Now()
}

func TestCollectBookingsSurfacesIterationError(t *testing.T) {
	streamErr := errors.New("connection reset")

	// A failure after some rows were read must not hand back a truncated
	// set: GetBlockingByRoom feeds the conflict check.
	bookings, err := collectBookings(&rowsStub{n: 1, err: streamErr, scan: scanBookingStub})
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, bookings)

	bookings, err = collectBookings(&rowsStub{err: streamErr})
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, bookings)
}

func TestCollectBookingsCleanStream(t *testing.T) {
	bookings, err := collectBookings(&rowsStub{n: 2, scan: scanBookingStub})
	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestCollectShiftsSurfacesIterationError(t *testing.T) {
	streamErr := errors.New("connection reset")

	shifts, err := collectShifts(&rowsStub{err: streamErr})
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, shifts)
}

func TestCollectTemplatesSurfacesIterationError(t *testing.T) {
	streamErr := errors.New("connection reset")

	templates, err := collectTemplates(&rowsStub{err: streamErr})
	assert.ErrorIs(t, err, streamErr)
	assert.Nil(t, templates)
}
