package model

import "time"

type Role string

const (
	RolePlayer     Role = "player"
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RolePlayer, RoleEmployee, RoleSupervisor:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"` // immutable after registration
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsSupervisor checks if the user can approve bookings and manage schedules.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

// IsEmployee checks if the user can be assigned to shifts.
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}
