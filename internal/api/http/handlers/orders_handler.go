package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrdersHandler exposes order submission and the kitchen workflow.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders}
}

// Submit handles POST /api/orders/submit: a customer places an order.
func (h *OrdersHandler) Submit(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleAuthenticated, ""); err != nil {
		return err
	}
	if user.Role != domain.RoleCustomer {
		return apperrors.NewForbidden("customer access required")
	}

	var req dto.SubmitOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	serviceType, ok := domain.ParseServiceType(req.ServiceType)
	if !ok {
		return apperrors.NewValidationError("invalid service_type", nil)
	}

	order, err := h.orders.Submit(c.UserContext(), user, serviceType, req.Note, toLines(req.Items))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// GetBill handles GET /api/orders/:id/bill.
func (h *OrdersHandler) GetBill(c *fiber.Ctx) error {
	order, err := h.loadAuthorized(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"order_id": order.ID,
		"total":    order.Total(),
		"paid":     order.Paid,
	}})
}

// ListByDiner handles GET /api/orders/diner?diner_id=.
func (h *OrdersHandler) ListByDiner(c *fiber.Ctx) error {
	dinerID := c.Query("diner_id")
	if dinerID == "" {
		return apperrors.NewValidationError("diner_id parameter required", nil)
	}

	user := auth.IdentityFromContext(c)
	if user == nil || !user.Role.IsStaff() {
		if err := auth.Authorize(user, auth.RuleSelfOrManager, dinerID); err != nil {
			return err
		}
	}

	orders, err := h.orders.ListByDiner(c.UserContext(), dinerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// ListAll handles GET /api/orders (staff and managers).
func (h *OrdersHandler) ListAll(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	orders, err := h.orders.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// ListKitchen handles GET /api/orders/kitchen: active orders only.
func (h *OrdersHandler) ListKitchen(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	orders, err := h.orders.ListKitchen(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponses(orders)})
}

// UpdateStatus handles POST /api/orders/status/update (staff only).
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	if err := requireStaff(c); err != nil {
		return err
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	status, ok := domain.ParseOrderStatus(req.Status)
	if !ok {
		return apperrors.NewValidationError("invalid status", nil)
	}

	order, err := h.orders.UpdateStatus(c.UserContext(), auth.IdentityFromContext(c), req.OrderID, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// AddItems handles POST /api/orders/items/add: the owner appends lines to
// a pending order.
func (h *OrdersHandler) AddItems(c *fiber.Ctx) error {
	var req dto.AddOrderItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
		return err
	}

	order, err := h.orders.AddItems(c.UserContext(), req.OrderID, toLines(req.Items))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// RemoveItems handles POST /api/orders/items/remove: the owner drops lines
// from a pending order.
func (h *OrdersHandler) RemoveItems(c *fiber.Ctx) error {
	var req dto.RemoveOrderItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
		return err
	}

	order, err := h.orders.RemoveItems(c.UserContext(), req.OrderID, req.ItemIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// UpdateItems handles POST /api/orders/update: the owner replaces a pending
// order's lines wholesale.
func (h *OrdersHandler) UpdateItems(c *fiber.Ctx) error {
	var req dto.UpdateOrderItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
		return err
	}

	order, err := h.orders.UpdateItems(c.UserContext(), req.OrderID, toLines(req.Items))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// AddNote handles POST /api/orders/note: the owning diner annotates their
// order.
func (h *OrdersHandler) AddNote(c *fiber.Ctx) error {
	var req dto.OrderNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
		return err
	}
	if err := h.orders.SetNote(c.UserContext(), req.OrderID, req.Note); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// ChooseService handles POST /api/orders/service/choose.
func (h *OrdersHandler) ChooseService(c *fiber.Ctx) error {
	var req dto.OrderServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	serviceType, ok := domain.ParseServiceType(req.ServiceType)
	if !ok {
		return apperrors.NewValidationError("invalid service_type", nil)
	}

	if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
		return err
	}
	if err := h.orders.SetServiceType(c.UserContext(), req.OrderID, serviceType); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"success": true}})
}

// Pay handles POST /api/orders/pay: the owner or staff settles the bill.
func (h *OrdersHandler) Pay(c *fiber.Ctx) error {
	var req dto.PayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	method, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return apperrors.NewValidationError("invalid payment_method; must be CASH or ONLINE_BANKING", nil)
	}

	user := auth.IdentityFromContext(c)
	if user == nil || !user.Role.IsStaff() {
		if _, err := h.authorizeOwner(c, req.OrderID); err != nil {
			return err
		}
	}

	order, err := h.orders.Pay(c.UserContext(), user, req.OrderID, method)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

func toLines(items []dto.OrderLineRequest) []service.OrderLine {
	lines := make([]service.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, service.OrderLine{MenuItemID: item.MenuItemID, Quantity: item.Quantity})
	}
	return lines
}

// loadAuthorized fetches the order and applies the self-or-manager rule
// with staff read access for the kitchen flow.
func (h *OrdersHandler) loadAuthorized(c *fiber.Ctx) (*domain.Order, error) {
	order, err := h.orders.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return nil, err
	}

	user := auth.IdentityFromContext(c)
	if user != nil && user.Role.IsStaff() {
		return order, nil
	}
	if err := auth.Authorize(user, auth.RuleSelfOrManager, order.DinerID); err != nil {
		return nil, err
	}
	return order, nil
}

func (h *OrdersHandler) authorizeOwner(c *fiber.Ctx, orderID string) (*domain.Order, error) {
	order, err := h.orders.Get(c.UserContext(), orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(auth.IdentityFromContext(c), auth.RuleSelfOrManager, order.DinerID); err != nil {
		return nil, err
	}
	return order, nil
}

func requireStaff(c *fiber.Ctx) error {
	user := auth.IdentityFromContext(c)
	if err := auth.Authorize(user, auth.RuleAuthenticated, ""); err != nil {
		return err
	}
	if !user.Role.IsStaff() {
		return apperrors.NewForbidden("staff access required")
	}
	return nil
}
