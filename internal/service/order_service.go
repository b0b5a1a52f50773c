package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrderService handles order submission and the kitchen workflow.
type OrderService struct {
	orders     repository.OrderRepository
	menus      repository.MenuRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, menus repository.MenuRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, menus: menus, dispatcher: dispatcher}
}

// OrderLine is one requested item in a submission.
type OrderLine struct {
	MenuItemID string
	Quantity   int
}

// Submit creates an order for the diner, snapshotting item names and prices
// at order time.
func (s *OrderService) Submit(ctx context.Context, diner *domain.User, serviceType domain.ServiceType, note string, lines []OrderLine) (*domain.Order, error) {
	items, err := s.snapshotLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		DinerID:     diner.ID,
		Status:      domain.OrderStatusPending,
		ServiceType: serviceType,
		Note:        note,
		Items:       items,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderSubmitted, order.ID, diner, events.OrderSubmittedPayload{
		DinerID:     diner.ID,
		ServiceType: order.ServiceType,
		ItemCount:   len(order.Items),
		Total:       order.Total(),
	})
	return order, nil
}

// Get loads one order.
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("order", nil)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ListByDiner returns one diner's orders.
func (s *OrderService) ListByDiner(ctx context.Context, dinerID string) ([]domain.Order, error) {
	return s.orders.ListByDiner(ctx, dinerID)
}

// ListAll returns every order, newest first.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// ListKitchen returns orders the kitchen still has to act on.
func (s *OrderService) ListKitchen(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListActive(ctx)
}

// UpdateStatus moves an order through the kitchen workflow.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.publish(ctx, events.EventOrderStatusChanged, order.ID, actor, events.OrderStatusChangedPayload{
		OldStatus: oldStatus,
		NewStatus: status,
	})
	return order, nil
}

// AddItems appends lines to a still-pending order, snapshotting current
// prices for the new lines only.
func (s *OrderService) AddItems(ctx context.Context, orderID string, lines []OrderLine) (*domain.Order, error) {
	order, err := s.getPending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	added, err := s.snapshotLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	order.Items = append(order.Items, added...)

	if err := s.orders.ReplaceItems(ctx, orderID, order.Items); err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveItems drops line items from a still-pending order by line item id.
// An order cannot be emptied this way.
func (s *OrderService) RemoveItems(ctx context.Context, orderID string, itemIDs []string) (*domain.Order, error) {
	order, err := s.getPending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	drop := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		drop[id] = true
	}

	kept := order.Items[:0]
	removed := 0
	for _, item := range order.Items {
		if drop[item.ID] {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed != len(drop) {
		return nil, apperrors.NewNotFound("order item", nil)
	}
	if len(kept) == 0 {
		return nil, apperrors.NewValidationError("order needs at least one item", nil)
	}
	order.Items = kept

	if err := s.orders.ReplaceItems(ctx, orderID, order.Items); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateItems replaces a still-pending order's lines wholesale, snapshotting
// current prices for the new set.
func (s *OrderService) UpdateItems(ctx context.Context, orderID string, lines []OrderLine) (*domain.Order, error) {
	order, err := s.getPending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items, err := s.snapshotLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	order.Items = items

	if err := s.orders.ReplaceItems(ctx, orderID, order.Items); err != nil {
		return nil, err
	}
	return order, nil
}

// SetNote attaches a diner note to the order.
func (s *OrderService) SetNote(ctx context.Context, orderID, note string) error {
	err := s.orders.UpdateNote(ctx, orderID, note)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("order", nil)
	}
	return err
}

// SetServiceType changes how the order is served.
func (s *OrderService) SetServiceType(ctx context.Context, orderID string, serviceType domain.ServiceType) error {
	err := s.orders.UpdateServiceType(ctx, orderID, serviceType)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("order", nil)
	}
	return err
}

// Pay settles an order's bill with the given payment method.
func (s *OrderService) Pay(ctx context.Context, actor *domain.User, orderID string, method domain.PaymentMethod) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Paid {
		return nil, apperrors.NewConflict("order already paid", nil)
	}

	if err := s.orders.MarkPaid(ctx, orderID, method); err != nil {
		return nil, err
	}
	order.Paid = true
	order.PaymentMethod = method

	s.publish(ctx, events.EventOrderPaid, order.ID, actor, events.OrderPaidPayload{
		Amount: order.Total(),
		Method: method,
	})
	return order, nil
}

// snapshotLines resolves requested lines against the live menu, copying
// name and price into order items.
func (s *OrderService) snapshotLines(ctx context.Context, lines []OrderLine) ([]domain.OrderItem, error) {
	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("order needs at least one item", nil)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("quantity must be positive", nil)
		}
		item, err := s.menus.GetItem(ctx, line.MenuItemID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("menu item", map[string]any{"menu_item_id": line.MenuItemID})
		}
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			UnitPrice:  item.Price,
			Quantity:   line.Quantity,
		})
	}
	return items, nil
}

// getPending loads an order that can still be edited. Once the kitchen has
// picked it up the line items are frozen.
func (s *OrderService) getPending(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusPending {
		return nil, apperrors.NewConflict("order can no longer be modified", nil)
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, orderID string, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OrderID:   orderID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if actor != nil {
		event.Actor = events.Actor{UserID: actor.ID, Role: actor.Role}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
