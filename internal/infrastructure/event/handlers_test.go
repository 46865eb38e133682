package event

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newPlacedOrder(t *testing.T) *order.Order {
	o, err := order.NewOrder(uuid.New(), []order.ItemInput{
		{
			ProductID:   uuid.New(),
			VariantID:   uuid.New(),
			ProductName: "Iron Teapot (Kyusu)",
			SKUCode:     "TEBL-F-001",
			UnitPrice:   decimal.NewFromInt(120),
			Quantity:    2,
		},
	}, order.PaymentMethodBankTransfer, order.ShippingDetails{
		FullName: "Aoi Tanaka",
		Phone:    "0912-000-111",
		Email:    "aoi@example.com",
		Address:  "1-2-3 Sakura",
		City:     "Kyoto",
	})
	require.NoError(t, err)
	return o
}

func TestOrderActivityHandler_LogsPlacedOrders(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewOrderActivityHandler(zap.New(core))

	event := order.NewOrderPlacedEvent(newPlacedOrder(t))
	require.NoError(t, handler.Handle(context.Background(), event))

	entries := logs.FilterMessage("order placed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, event.OrderNo, fields["order_no"])
	assert.Equal(t, int64(1), fields["items"])
}

func TestOrderActivityHandler_LogsStatusChanges(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := NewOrderActivityHandler(zap.New(core))

	o := newPlacedOrder(t)
	require.NoError(t, o.SetStatus(order.OrderStatusPaid))

	event := order.NewOrderStatusChangedEvent(o, order.OrderStatusPending)
	require.NoError(t, handler.Handle(context.Background(), event))

	entries := logs.FilterMessage("order status changed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "PENDING", fields["from"])
	assert.Equal(t, "PAID", fields["to"])
}

func TestOrderActivityHandler_EventTypes(t *testing.T) {
	handler := NewOrderActivityHandler(nil)
	assert.ElementsMatch(t,
		[]string{order.EventTypeOrderPlaced, order.EventTypeOrderStatusChanged},
		handler.EventTypes())
}
