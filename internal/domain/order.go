package domain

import "time"

// OrderStatus tracks kitchen progress of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus validates a status value supplied by a caller.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	switch OrderStatus(value) {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(value), true
	}
	return "", false
}

// ServiceType is how the diner wants the order served.
type ServiceType string

const (
	ServiceTypeDineIn   ServiceType = "DINE_IN"
	ServiceTypeTakeaway ServiceType = "TAKEAWAY"
	ServiceTypeDelivery ServiceType = "DELIVERY"
)

// ParseServiceType validates a service type supplied by a caller.
func ParseServiceType(value string) (ServiceType, bool) {
	switch ServiceType(value) {
	case ServiceTypeDineIn, ServiceTypeTakeaway, ServiceTypeDelivery:
		return ServiceType(value), true
	}
	return "", false
}

// PaymentMethod is how the diner settles the bill.
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "CASH"
	PaymentMethodOnlineBanking PaymentMethod = "ONLINE_BANKING"
)

// ParsePaymentMethod validates a payment method supplied by a caller.
func ParsePaymentMethod(value string) (PaymentMethod, bool) {
	switch PaymentMethod(value) {
	case PaymentMethodCash, PaymentMethodOnlineBanking:
		return PaymentMethod(value), true
	}
	return "", false
}

// Order is one diner's order with its line items.
type Order struct {
	ID            string
	DinerID       string
	Status        OrderStatus
	ServiceType   ServiceType
	Note          string
	Paid          bool
	PaymentMethod PaymentMethod
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots the item name and unit price at order time so later
// menu edits do not change past bills.
type OrderItem struct {
	ID         string
	OrderID    string
	MenuItemID string
	Name       string
	UnitPrice  float64
	Quantity   int
}

// Total computes the bill amount for the order.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
