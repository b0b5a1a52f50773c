package domain

import "time"

// Rating bounds for feedback.
const (
	RatingMin = 1
	RatingMax = 5
)

// Feedback is a diner's review of one order. At most one feedback record
// may exist per order.
type Feedback struct {
	ID        string
	OrderID   string
	DinerID   string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
