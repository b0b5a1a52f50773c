package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepository aggregates reporting figures over a time range.
type AnalyticsRepository interface {
	AverageRating(ctx context.Context, start, end time.Time) (float64, int64, error)
	Revenue(ctx context.Context, start, end time.Time) (float64, error)
	OrderCount(ctx context.Context, start, end time.Time) (int64, error)
}

type analyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository returns a Postgres-backed implementation.
func NewAnalyticsRepository(pool *pgxpool.Pool) AnalyticsRepository {
	return &analyticsRepository{pool: pool}
}

func (r *analyticsRepository) AverageRating(ctx context.Context, start, end time.Time) (float64, int64, error) {
	const query = `
        SELECT COALESCE(AVG(rating), 0), COUNT(*)
        FROM feedback WHERE created_at >= $1 AND created_at < $2`

	var avg float64
	var count int64
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

func (r *analyticsRepository) Revenue(ctx context.Context, start, end time.Time) (float64, error) {
	const query = `
        SELECT COALESCE(SUM(oi.unit_price * oi.quantity), 0)
        FROM orders o
        JOIN order_items oi ON oi.order_id = o.id
        WHERE o.paid AND o.created_at >= $1 AND o.created_at < $2`

	var revenue float64
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}

func (r *analyticsRepository) OrderCount(ctx context.Context, start, end time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`

	var count int64
	if err := r.pool.QueryRow(ctx, query, start, end).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
