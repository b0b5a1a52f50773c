package events

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventOrderSubmitted     EventType = "order_submitted"
	EventOrderStatusChanged EventType = "order_status_changed"
	EventOrderPaid          EventType = "order_paid"
	EventFeedbackSubmitted  EventType = "feedback_submitted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderID   string      `json:"order_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// OrderSubmittedPayload payload.
type OrderSubmittedPayload struct {
	DinerID     string             `json:"diner_id"`
	ServiceType domain.ServiceType `json:"service_type"`
	ItemCount   int                `json:"item_count"`
	Total       float64            `json:"total"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// OrderPaidPayload payload.
type OrderPaidPayload struct {
	Amount float64              `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	FeedbackID string `json:"feedback_id"`
	Rating     int    `json:"rating"`
}
