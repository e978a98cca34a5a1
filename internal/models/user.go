package models

import (
	"time"
)

// Role is the closed set of account roles. Stored as a string column but
// never accepted from input without a Valid() check.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleViewer
}

// User is an account record. The password hash never leaves the store
// boundary in API responses (json:"-" plus the dto.UserResponse mapping).
type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"column:password;not null" json:"-"`
	Role         Role       `gorm:"size:20;not null;default:'viewer'" json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLogin    *time.Time `json:"lastLogin"`
}
