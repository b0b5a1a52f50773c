package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// FeedbackRepository defines persistence access for order feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *domain.Feedback) error
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository returns a Postgres-backed implementation.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (order_id, diner_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		feedback.OrderID,
		feedback.DinerID,
		feedback.Rating,
		feedback.Comment,
	).Scan(&feedback.ID, &feedback.CreatedAt)
	// the unique index on order_id is the arbiter when two submissions race
	return mapUniqueViolation(err, "Feedback already submitted for this order")
}

func (r *feedbackRepository) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM feedback WHERE order_id=$1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	const query = `
        SELECT id, order_id, diner_id, rating, comment, created_at
        FROM feedback ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedbacks []domain.Feedback
	for rows.Next() {
		var feedback domain.Feedback
		if err := rows.Scan(
			&feedback.ID,
			&feedback.OrderID,
			&feedback.DinerID,
			&feedback.Rating,
			&feedback.Comment,
			&feedback.CreatedAt,
		); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, feedback)
	}
	return feedbacks, rows.Err()
}
