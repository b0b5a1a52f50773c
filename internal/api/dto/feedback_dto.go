package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// SubmitFeedbackRequest payload for order feedback. Rating bounds are
// checked by the service so the out-of-range message stays consistent for
// form and JSON callers alike.
type SubmitFeedbackRequest struct {
	OrderID string `json:"order_id" form:"order_id" validate:"required"`
	Rating  int    `json:"rating" form:"rating" validate:"required"`
	Comment string `json:"comment" form:"comment"`
}

// FeedbackResponse is the wire shape of one feedback record.
type FeedbackResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	DinerID   string    `json:"diner_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedbackResponse maps a feedback record.
func NewFeedbackResponse(feedback *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID,
		OrderID:   feedback.OrderID,
		DinerID:   feedback.DinerID,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: feedback.CreatedAt,
	}
}
