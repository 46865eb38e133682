package event

import (
	"context"

	"github.com/komorebi/backend/internal/domain/order"
	"github.com/komorebi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderActivityHandler writes an audit line for every order event. It is
// the storefront's lightweight order trail; nothing downstream depends
// on it, so a handler failure never affects the request.
type OrderActivityHandler struct {
	logger *zap.Logger
}

// NewOrderActivityHandler creates a new OrderActivityHandler
func NewOrderActivityHandler(logger *zap.Logger) *OrderActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderActivityHandler{logger: logger}
}

// Handle logs the order event
func (h *OrderActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		h.logger.Info("order placed",
			zap.String("order_no", e.OrderNo),
			zap.String("user_id", e.UserID),
			zap.Int("items", e.ItemCount),
			zap.String("total", e.Total.String()),
		)
	case *order.OrderStatusChangedEvent:
		h.logger.Info("order status changed",
			zap.String("order_no", e.OrderNo),
			zap.String("from", string(e.OldStatus)),
			zap.String("to", string(e.NewStatus)),
		)
	default:
		h.logger.Debug("order event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_id", event.AggregateID().String()),
		)
	}
	return nil
}

// EventTypes returns the order event types this handler consumes
func (h *OrderActivityHandler) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderStatusChanged,
	}
}

var _ shared.EventHandler = (*OrderActivityHandler)(nil)
