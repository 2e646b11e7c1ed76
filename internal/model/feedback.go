package model

import "time"

// Feedback is a single structured submission about hostel facilities, mess
// food and bathrooms. Rows are written once and never updated; they disappear
// only when the owning user is deleted.
type Feedback struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Username        string    `gorm:"size:64;not null;index" json:"username"`
	SubmittedAt     time.Time `gorm:"not null;index" json:"submittedAt"`
	HostelComment   string    `json:"hostelComment"`
	HostelRating    string    `gorm:"size:1;not null;check:hostel_rating IN ('A','B','C','D','E')" json:"hostelRating"`
	MessComment     string    `json:"messComment"`
	MessType        string    `gorm:"size:16;not null;check:mess_type IN ('Veg','Non-Veg','Special','Food-Park')" json:"messType"`
	MessRating      string    `gorm:"size:1;not null;check:mess_rating IN ('A','B','C','D','E')" json:"messRating"`
	BathroomComment string    `json:"bathroomComment"`
	BathroomRating  string    `gorm:"size:1;not null;check:bathroom_rating IN ('A','B','C','D','E')" json:"bathroomRating"`
	OtherComments   string    `json:"otherComments"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
}
