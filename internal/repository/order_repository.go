package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderRepository defines persistence access for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByDiner(ctx context.Context, dinerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	UpdateNote(ctx context.Context, id, note string) error
	UpdateServiceType(ctx context.Context, id string, serviceType domain.ServiceType) error
	ReplaceItems(ctx context.Context, orderID string, items []domain.OrderItem) error
	MarkPaid(ctx context.Context, id string, method domain.PaymentMethod) error
}

type orderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns a Postgres-backed implementation.
func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &orderRepository{pool: pool}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const orderQuery = `
        INSERT INTO orders (diner_id, status, service_type, note)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	if err := tx.QueryRow(ctx, orderQuery,
		order.DinerID,
		order.Status,
		order.ServiceType,
		order.Note,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, menu_item_id, name, unit_price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.MenuItemID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

const orderColumns = `id, diner_id, status, service_type, note, paid, payment_method, created_at, updated_at`

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`

	var order domain.Order
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.DinerID,
		&order.Status,
		&order.ServiceType,
		&order.Note,
		&order.Paid,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

func (r *orderRepository) ListByDiner(ctx context.Context, dinerID string) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE diner_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, dinerID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) ListActive(ctx context.Context) ([]domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
        WHERE status IN ('PENDING', 'PREPARING', 'READY')
        ORDER BY created_at`
	return r.list(ctx, query)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	return r.exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, id)
}

func (r *orderRepository) UpdateNote(ctx context.Context, id, note string) error {
	return r.exec(ctx, `UPDATE orders SET note=$1, updated_at=NOW() WHERE id=$2`, note, id)
}

func (r *orderRepository) UpdateServiceType(ctx context.Context, id string, serviceType domain.ServiceType) error {
	return r.exec(ctx, `UPDATE orders SET service_type=$1, updated_at=NOW() WHERE id=$2`, serviceType, id)
}

// ReplaceItems swaps an order's line items for a new set in one
// transaction.
func (r *orderRepository) ReplaceItems(ctx context.Context, orderID string, items []domain.OrderItem) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx, `UPDATE orders SET updated_at=NOW() WHERE id=$1`, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, orderID); err != nil {
		return err
	}

	const itemQuery = `
        INSERT INTO order_items (order_id, menu_item_id, name, unit_price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	for i := range items {
		item := &items[i]
		item.OrderID = orderID
		if err := tx.QueryRow(ctx, itemQuery,
			item.OrderID,
			item.MenuItemID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
		).Scan(&item.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) MarkPaid(ctx context.Context, id string, method domain.PaymentMethod) error {
	return r.exec(ctx, `UPDATE orders SET paid=TRUE, payment_method=$1, updated_at=NOW() WHERE id=$2`, method, id)
}

func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.DinerID,
			&order.Status,
			&order.ServiceType,
			&order.Note,
			&order.Paid,
			&order.PaymentMethod,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const query = `
        SELECT id, order_id, menu_item_id, name, unit_price, quantity
        FROM order_items WHERE order_id=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
