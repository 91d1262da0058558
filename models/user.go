package models

import "time"

// Roles an account can hold.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Username  string     `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;size:120;not null"`
	Password  string     `json:"-" gorm:"not null"` // bcrypt hash
	Role      string     `json:"role" gorm:"size:20;not null;default:student"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
