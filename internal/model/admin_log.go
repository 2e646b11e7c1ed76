package model

import "time"

// AdminLog is an append-only audit entry for administrator actions
// (logins, deletions, log clears). The only bulk operation is a full clear.
type AdminLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Action    string    `gorm:"size:64;not null" json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
