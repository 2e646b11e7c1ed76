package model

import "time"

// Guest is the occupancy-level record linked to a user account. It is created
// alongside registration and removed by the user-deletion cascade.
type Guest struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:128" json:"email"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	User  User   `json:"-"`
	Stays []Stay `gorm:"foreignKey:GuestID;constraint:OnDelete:CASCADE" json:"stays,omitempty"`
}
