package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// FeedbackService handles order reviews.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	orders     repository.OrderRepository
	dispatcher events.Dispatcher
}

// NewFeedbackService builds the service.
func NewFeedbackService(feedback repository.FeedbackRepository, orders repository.OrderRepository, dispatcher events.Dispatcher) *FeedbackService {
	return &FeedbackService{feedback: feedback, orders: orders, dispatcher: dispatcher}
}

// Submit records a diner's feedback for their own order. Rating must be in
// [1,5] and an order takes at most one feedback record.
func (s *FeedbackService) Submit(ctx context.Context, diner *domain.User, orderID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < domain.RatingMin || rating > domain.RatingMax {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Rating must be between %d and %d", domain.RatingMin, domain.RatingMax), nil)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("order", nil)
	}
	if err != nil {
		return nil, err
	}
	if order.DinerID != diner.ID {
		return nil, apperrors.NewForbidden("can only submit feedback for own orders")
	}

	exists, err := s.feedback.ExistsForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("Feedback already submitted for this order", nil)
	}

	feedback := &domain.Feedback{
		OrderID: orderID,
		DinerID: diner.ID,
		Rating:  rating,
		Comment: comment,
	}
	// a concurrent duplicate still lands here as CONFLICT via the unique index
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFeedbackSubmitted,
			OrderID:   orderID,
			Actor:     events.Actor{UserID: diner.ID, Role: diner.Role},
			Timestamp: time.Now(),
			Payload:   events.FeedbackSubmittedPayload{FeedbackID: feedback.ID, Rating: feedback.Rating},
		})
	}
	return feedback, nil
}

// List returns all feedback, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.List(ctx)
}
