package model

import "time"

// Shift is an employee's working interval in a room. Shifts are never
// removed, only deactivated.
type Shift struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	RoomID     int64     `json:"room_id"`
	Date       time.Time `json:"date"` // calendar day of the shift, UTC midnight
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`

	// Convenience fields, not stored columns.
	Employee *User   `json:"employee,omitempty"`
	Room     *Room   `json:"room,omitempty"`
	Tasks    []*Task `json:"tasks,omitempty"`
}

// Covers reports whether t falls inside the shift's half-open working
// interval [StartTime, EndTime).
func (s *Shift) Covers(t time.Time) bool {
	return !t.Before(s.StartTime) && t.Before(s.EndTime)
}
