package model

import "time"

type TaskCategory string

const (
	TaskCategoryComputerOrganization TaskCategory = "computer_organization"
	TaskCategoryGameUpdates          TaskCategory = "game_updates"
	TaskCategoryEquipmentChecks      TaskCategory = "equipment_checks"
	TaskCategoryCleaning             TaskCategory = "cleaning"
)

// Valid reports whether the category is one of the known values.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryComputerOrganization, TaskCategoryGameUpdates,
		TaskCategoryEquipmentChecks, TaskCategoryCleaning:
		return true
	}
	return false
}

// Task is a single checklist item scoped to one shift. CompletedAt is set
// exactly while IsCompleted is true.
type Task struct {
	ID          int64        `json:"id"`
	ShiftID     int64        `json:"shift_id"`
	Name        string       `json:"name"`
	Category    TaskCategory `json:"category"`
	IsCompleted bool         `json:"is_completed"`
	CompletedAt *time.Time   `json:"completed_at"`
	CreatedAt   time.Time    `json:"created_at"`
}
