package service

import (
	"context"
	"errors"
	"io"
	"math"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/storage"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// MenuService handles menu browsing and manager edits of menu items.
type MenuService struct {
	menus repository.MenuRepository
	files storage.FileStore
}

// NewMenuService builds the service.
func NewMenuService(menus repository.MenuRepository, files storage.FileStore) *MenuService {
	return &MenuService{menus: menus, files: files}
}

// ListMenus returns all menus.
func (s *MenuService) ListMenus(ctx context.Context) ([]domain.Menu, error) {
	return s.menus.ListMenus(ctx)
}

// GetMenu loads one menu.
func (s *MenuService) GetMenu(ctx context.Context, id string) (*domain.Menu, error) {
	menu, err := s.menus.GetMenu(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("menu", nil)
	}
	if err != nil {
		return nil, err
	}
	return menu, nil
}

// ListItems returns items, optionally filtered to one menu.
func (s *MenuService) ListItems(ctx context.Context, menuID string) ([]domain.MenuItem, error) {
	return s.menus.ListItems(ctx, menuID)
}

// ItemInput carries fields for an item create/update. Image is optional on
// update and mandatory on create.
type ItemInput struct {
	MenuID      string
	Name        string
	Description string
	Price       float64
	ImageName   string
	Image       io.Reader
}

// AddItem creates a menu item under an existing menu.
func (s *MenuService) AddItem(ctx context.Context, input ItemInput) (*domain.MenuItem, error) {
	if _, err := s.GetMenu(ctx, input.MenuID); err != nil {
		return nil, err
	}

	imageRef, err := s.files.Store(input.ImageName, input.Image)
	if err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		MenuID:      input.MenuID,
		Name:        input.Name,
		Description: input.Description,
		Price:       roundPrice(input.Price),
		ImageRef:    imageRef,
	}
	if err := s.menus.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem applies the provided fields to an existing item; zero-valued
// fields are left untouched.
func (s *MenuService) UpdateItem(ctx context.Context, itemID string, input ItemInput) (*domain.MenuItem, error) {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Description != "" {
		item.Description = input.Description
	}
	if input.Price > 0 {
		item.Price = roundPrice(input.Price)
	}
	if input.Image != nil {
		imageRef, err := s.files.Store(input.ImageName, input.Image)
		if err != nil {
			return nil, err
		}
		_ = s.files.Remove(item.ImageRef)
		item.ImageRef = imageRef
	}

	if err := s.menus.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes an item and its stored image.
func (s *MenuService) RemoveItem(ctx context.Context, itemID string) error {
	item, err := s.getItem(ctx, itemID)
	if err != nil {
		return err
	}

	if err := s.menus.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("menu item", nil)
		}
		return err
	}
	_ = s.files.Remove(item.ImageRef)
	return nil
}

func (s *MenuService) getItem(ctx context.Context, itemID string) (*domain.MenuItem, error) {
	item, err := s.menus.GetItem(ctx, itemID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("menu item", nil)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func roundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
