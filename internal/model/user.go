package model

import "time"

// User represents a registered student account.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string     `gorm:"size:128;not null" json:"-"`
	Name         string     `gorm:"size:128;not null" json:"name"`
	Email        string     `gorm:"size:128;not null" json:"email"`
	RegNo        string     `gorm:"size:64;not null" json:"regNo"`
	RoomNo       string     `gorm:"size:32;not null" json:"roomNo"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`

	// Associations. Deleting a user removes their feedback and guest record.
	Feedback []Feedback `gorm:"foreignKey:Username;references:Username;constraint:OnDelete:CASCADE" json:"-"`
	Guest    *Guest     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
