package model

import "time"

// Room is a bookable gaming room. Rooms are never removed, only deactivated.
type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Equipment   []string  `json:"equipment"`
	HourlyRate  float64   `json:"hourly_rate"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
