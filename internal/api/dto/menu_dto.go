package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// AddMenuItemRequest payload for item creation; the image arrives as a
// multipart file alongside these fields.
type AddMenuItemRequest struct {
	MenuID      string  `json:"menu_id" form:"menu_id" validate:"required"`
	Name        string  `json:"name" form:"name" validate:"required,max=100"`
	Description string  `json:"description" form:"description" validate:"required"`
	Price       float64 `json:"price" form:"price" validate:"required,gt=0"`
}

// UpdateMenuItemRequest payload for item updates; empty fields are ignored.
type UpdateMenuItemRequest struct {
	ItemID      string  `json:"item_id" form:"item_id" validate:"required"`
	Name        string  `json:"name" form:"name" validate:"max=100"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"price" form:"price" validate:"omitempty,gt=0"`
}

// RemoveMenuItemRequest payload for item removal.
type RemoveMenuItemRequest struct {
	ItemID string `json:"item_id" form:"item_id" validate:"required"`
}

// MenuResponse is the wire shape of a menu.
type MenuResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewMenuResponse maps a menu.
func NewMenuResponse(menu domain.Menu) MenuResponse {
	return MenuResponse{ID: menu.ID, Name: menu.Name, Description: menu.Description}
}

// MenuItemResponse is the wire shape of a menu item.
type MenuItemResponse struct {
	ID          string    `json:"id"`
	MenuID      string    `json:"menu_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageRef    string    `json:"image_ref,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewMenuItemResponse maps a menu item.
func NewMenuItemResponse(item domain.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          item.ID,
		MenuID:      item.MenuID,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageRef:    item.ImageRef,
		CreatedAt:   item.CreatedAt,
	}
}
