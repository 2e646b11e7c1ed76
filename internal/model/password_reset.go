package model

import "time"

// PasswordReset is an emailed one-time token allowing a student to set a new
// password. It is not part of the login flow.
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"size:64;not null;index" json:"username"`
	Token     string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	UsedAt    *time.Time `json:"usedAt"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`
}
