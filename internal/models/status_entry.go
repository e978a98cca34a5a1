package models

import (
	"time"
)

// StatusEntry is one immutable snapshot of the tracked status. Updates never
// mutate a row; every write inserts a new entry and "current status" is the
// row with the greatest CreatedAt (ties broken by greatest ID).
type StatusEntry struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"userId"`
	LastWaterIntake *time.Time `json:"lastWaterIntake"`
	Altitude        *int       `gorm:"check:altitude >= 1 AND altitude <= 10" json:"altitude"`
	LastUpdated     time.Time  `gorm:"not null" json:"lastUpdated"`
	CreatedAt       time.Time  `gorm:"not null;index" json:"createdAt"`
}
