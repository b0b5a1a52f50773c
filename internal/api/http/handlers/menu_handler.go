package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// MenuHandler exposes public menu browsing and manager item edits.
type MenuHandler struct {
	menu *service.MenuService
}

// NewMenuHandler constructs handler.
func NewMenuHandler(menu *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// ListMenus handles GET /api/menu/menus.
func (h *MenuHandler) ListMenus(c *fiber.Ctx) error {
	menus, err := h.menu.ListMenus(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]dto.MenuResponse, 0, len(menus))
	for _, menu := range menus {
		responses = append(responses, dto.NewMenuResponse(menu))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// GetMenu handles GET /api/menu/menus/:id.
func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	menu, err := h.menu.GetMenu(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMenuResponse(*menu)})
}

// ListItems handles GET /api/menu/items?menu_id=.
func (h *MenuHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.menu.ListItems(c.UserContext(), c.Query("menu_id"))
	if err != nil {
		return err
	}

	responses := make([]dto.MenuItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewMenuItemResponse(item))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// AddItem handles POST /api/menu/items/add (multipart, manager only).
func (h *MenuHandler) AddItem(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.AddMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperrors.NewValidationError("image file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable image file", nil)
	}
	defer file.Close()

	item, err := h.menu.AddItem(c.UserContext(), service.ItemInput{
		MenuID:      req.MenuID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageName:   fileHeader.Filename,
		Image:       file,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewMenuItemResponse(*item)})
}

// UpdateItem handles POST /api/menu/items/update (manager only).
func (h *MenuHandler) UpdateItem(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.UpdateMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.ItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if fileHeader, err := c.FormFile("image"); err == nil {
		file, openErr := openUpload(fileHeader)
		if openErr != nil {
			return openErr
		}
		defer file.Close()
		input.ImageName = fileHeader.Filename
		input.Image = file
	}

	item, err := h.menu.UpdateItem(c.UserContext(), req.ItemID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewMenuItemResponse(*item)})
}

// RemoveItem handles POST /api/menu/items/remove (manager only).
func (h *MenuHandler) RemoveItem(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleManagerOnly, ""); err != nil {
		return err
	}

	var req dto.RemoveMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.menu.RemoveItem(c.UserContext(), req.ItemID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

func openUpload(fileHeader *multipart.FileHeader) (multipart.File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewValidationError("unreadable image file", nil)
	}
	return file, nil
}
