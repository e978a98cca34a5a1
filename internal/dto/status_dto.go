package dto

import "time"

// StatusRequest is the write payload for POST and PUT /api/status. Nil
// fields are "not specified"; PUT requires at least one present.
type StatusRequest struct {
	LastWaterIntake *time.Time `json:"lastWaterIntake"`
	Altitude        *int       `json:"altitude"`
}

type UserStatsResponse struct {
	TotalEntries     int        `json:"totalEntries"`
	AverageAltitude  float64    `json:"averageAltitude"`
	LastActivityDate *time.Time `json:"lastActivityDate"`
}
