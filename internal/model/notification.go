package model

import "time"

type NotificationType string

const (
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypeShift   NotificationType = "shift"
	NotificationTypeSystem  NotificationType = "system"
)

// Notification is created only by system-internal triggers and is never
// deleted; IsRead is its only mutable field and flips false to true once.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
