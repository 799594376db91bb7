package model

import "time"

// TaskTemplate is the seed set for shift checklists. Templates flagged
// IsDefault are instantiated into every new shift; later template changes
// never touch tasks of existing shifts.
type TaskTemplate struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Category  TaskCategory `json:"category"`
	IsDefault bool         `json:"is_default"`
	CreatedAt time.Time    `json:"created_at"`
}
