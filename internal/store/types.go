package store

import "time"

// RatingCategory selects which of the three rated areas a reporting query
// groups or filters on.
type RatingCategory string

const (
	CategoryHostel   RatingCategory = "hostel"
	CategoryMess     RatingCategory = "mess"
	CategoryBathroom RatingCategory = "bathroom"
)

// ratingColumns maps a category to its feedback column. Acting only through
// this map keeps user input out of SQL fragments.
var ratingColumns = map[RatingCategory]string{
	CategoryHostel:   "hostel_rating",
	CategoryMess:     "mess_rating",
	CategoryBathroom: "bathroom_rating",
}

// searchColumns maps a search target to its comment column.
var searchColumns = map[string]string{
	"hostel":   "hostel_comment",
	"mess":     "mess_comment",
	"bathroom": "bathroom_comment",
	"other":    "other_comments",
}

// RatingGrades is the closed set of accepted rating values, best to worst.
var RatingGrades = []string{"A", "B", "C", "D", "E"}

// MessTypes is the closed set of accepted meal categories.
var MessTypes = []string{"Veg", "Non-Veg", "Special", "Food-Park"}

// FeedbackFilter narrows admin feedback listings and exports. Zero values
// mean "no restriction".
type FeedbackFilter struct {
	Username       string
	From           *time.Time
	To             *time.Time
	MessType       string
	Rating         string
	RatingCategory RatingCategory // which column Rating applies to; hostel if empty
	Search         string
	SearchIn       string // hostel|mess|bathroom|other; all comment columns if empty
}

// RatingCount is one bucket of a per-category rating distribution.
type RatingCount struct {
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalFeedback int64 `json:"totalFeedback"`
}
