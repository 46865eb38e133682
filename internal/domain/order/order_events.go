package order

import (
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the order aggregate
const (
	EventTypeOrderPlaced        = "order.placed"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderPlacedEvent is published when checkout completes
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNo   string          `json:"order_no"`
	UserID    string          `json:"user_id"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", o.ID),
		OrderNo:         o.OrderNo,
		UserID:          o.UserID.String(),
		ItemCount:       len(o.Items),
		Total:           o.Total,
	}
}

// OrderStatusChangedEvent is published on admin status reassignment
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNo   string      `json:"order_no"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, old OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderNo:         o.OrderNo,
		OldStatus:       old,
		NewStatus:       o.Status,
	}
}
