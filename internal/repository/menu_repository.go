package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// MenuRepository defines persistence access for menus and their items.
type MenuRepository interface {
	ListMenus(ctx context.Context) ([]domain.Menu, error)
	GetMenu(ctx context.Context, id string) (*domain.Menu, error)
	ListItems(ctx context.Context, menuID string) ([]domain.MenuItem, error)
	GetItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
	UpdateItem(ctx context.Context, item *domain.MenuItem) error
	DeleteItem(ctx context.Context, id string) error
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a Postgres-backed implementation.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM menus ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var menus []domain.Menu
	for rows.Next() {
		var menu domain.Menu
		if err := rows.Scan(&menu.ID, &menu.Name, &menu.Description, &menu.CreatedAt, &menu.UpdatedAt); err != nil {
			return nil, err
		}
		menus = append(menus, menu)
	}
	return menus, rows.Err()
}

func (r *menuRepository) GetMenu(ctx context.Context, id string) (*domain.Menu, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM menus WHERE id=$1`

	var menu domain.Menu
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&menu.ID,
		&menu.Name,
		&menu.Description,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &menu, nil
}

const menuItemColumns = `id, menu_id, name, description, price, image_ref, created_at, updated_at`

func (r *menuRepository) ListItems(ctx context.Context, menuID string) ([]domain.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items`
	args := []any{}
	if menuID != "" {
		query += ` WHERE menu_id=$1`
		args = append(args, menuID)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.MenuID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageRef,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *menuRepository) GetItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	const query = `SELECT ` + menuItemColumns + ` FROM menu_items WHERE id=$1`

	var item domain.MenuItem
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.MenuID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.ImageRef,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        INSERT INTO menu_items (menu_id, name, description, price, image_ref)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		item.MenuID,
		item.Name,
		item.Description,
		item.Price,
		item.ImageRef,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

func (r *menuRepository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	const query = `
        UPDATE menu_items SET name=$1, description=$2, price=$3, image_ref=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		item.Name,
		item.Description,
		item.Price,
		item.ImageRef,
		item.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *menuRepository) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
