package model

import "time"

// Room is a single room within a hostel.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"size:32;not null" json:"number"`
	Type      string    `gorm:"size:32" json:"type"`
	HostelID  uint      `gorm:"index;not null" json:"hostelId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`

	// Associations
	Hostel Hostel `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
