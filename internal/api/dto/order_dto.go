package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderLineRequest is one requested item in a submission.
type OrderLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
}

// SubmitOrderRequest payload for order submission.
type SubmitOrderRequest struct {
	ServiceType string             `json:"service_type" form:"service_type" validate:"required"`
	Note        string             `json:"note" form:"note"`
	Items       []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest payload for kitchen status changes.
type UpdateOrderStatusRequest struct {
	OrderID string `json:"order_id" form:"order_id" validate:"required"`
	Status  string `json:"status" form:"status" validate:"required"`
}

// OrderNoteRequest payload for attaching a note.
type OrderNoteRequest struct {
	OrderID string `json:"order_id" form:"order_id" validate:"required"`
	Note    string `json:"note" form:"note" validate:"required"`
}

// OrderServiceRequest payload for choosing the service type.
type OrderServiceRequest struct {
	OrderID     string `json:"order_id" form:"order_id" validate:"required"`
	ServiceType string `json:"service_type" form:"service_type" validate:"required"`
}

// AddOrderItemsRequest payload for appending lines to a pending order.
type AddOrderItemsRequest struct {
	OrderID string             `json:"order_id" form:"order_id" validate:"required"`
	Items   []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// RemoveOrderItemsRequest payload for dropping lines from a pending order.
type RemoveOrderItemsRequest struct {
	OrderID string   `json:"order_id" form:"order_id" validate:"required"`
	ItemIDs []string `json:"item_ids" validate:"required,min=1"`
}

// UpdateOrderItemsRequest payload for replacing a pending order's lines.
type UpdateOrderItemsRequest struct {
	OrderID string             `json:"order_id" form:"order_id" validate:"required"`
	Items   []OrderLineRequest `json:"items" validate:"required,min=1,dive"`
}

// PayOrderRequest payload for settling the bill.
type PayOrderRequest struct {
	OrderID       string `json:"order_id" form:"order_id" validate:"required"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"required"`
}

// OrderItemResponse is the wire shape of one line item. ID is the line item
// id used by item removal.
type OrderItemResponse struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   int     `json:"quantity"`
}

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID            string              `json:"id"`
	DinerID       string              `json:"diner_id"`
	Status        string              `json:"status"`
	ServiceType   string              `json:"service_type"`
	Note          string              `json:"note,omitempty"`
	Paid          bool                `json:"paid"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Total         float64             `json:"total"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:         item.ID,
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Quantity:   item.Quantity,
		})
	}
	return OrderResponse{
		ID:            order.ID,
		DinerID:       order.DinerID,
		Status:        string(order.Status),
		ServiceType:   string(order.ServiceType),
		Note:          order.Note,
		Paid:          order.Paid,
		PaymentMethod: string(order.PaymentMethod),
		Total:         order.Total(),
		Items:         items,
		CreatedAt:     order.CreatedAt,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []domain.Order) []OrderResponse {
	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewOrderResponse(&orders[i]))
	}
	return responses
}
