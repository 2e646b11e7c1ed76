package model

import "time"

// Stay records a guest occupying a room over a time span. A NULL CheckOut
// marks an open stay; once CheckOut is set no operation reopens it.
type Stay struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	GuestID   uint       `gorm:"index;not null" json:"guestId"`
	RoomID    uint       `gorm:"index;not null" json:"roomId"`
	CheckIn   time.Time  `gorm:"not null" json:"checkIn"`
	CheckOut  *time.Time `json:"checkOut"`
	CreatedAt time.Time  `gorm:"not null" json:"createdAt"`

	// Associations
	Room Room `json:"-"`
}
