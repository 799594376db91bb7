package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // awaiting supervisor decision
	BookingStatusApproved  BookingStatus = "approved"  // confirmed by a supervisor
	BookingStatusRejected  BookingStatus = "rejected"  // declined by a supervisor
	BookingStatusCompleted BookingStatus = "completed" // interval elapsed, closed out
	BookingStatusCancelled BookingStatus = "cancelled" // withdrawn by the player
)

// Valid reports whether the status is one of the known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// bookingTransitions enumerates the permitted status changes. Completed,
// rejected and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:  {BookingStatusApproved, BookingStatusRejected, BookingStatusCancelled},
	BookingStatusApproved: {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionTo reports whether a booking may move from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	RoomID    int64         `json:"room_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Status    BookingStatus `json:"status"`
	QRCode    string        `json:"qr_code"`
	CreatedAt time.Time     `json:"created_at"`

	// Convenience fields for responses and notifications, not stored columns.
	User *User `json:"user,omitempty"`
	Room *Room `json:"room,omitempty"`
}

// Blocks reports whether the booking holds its time slot against new
// bookings. Rejected and cancelled bookings never block.
func (b *Booking) Blocks() bool {
	switch b.Status {
	case BookingStatusPending, BookingStatusApproved, BookingStatusCompleted:
		return true
	}
	return false
}

// Overlaps reports whether the half-open interval [start, end) intersects
// the booking's [StartTime, EndTime). Abutting intervals do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}
