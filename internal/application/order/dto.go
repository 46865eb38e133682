package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// PlaceOrderInput carries what checkout collects beyond the cart itself
type PlaceOrderInput struct {
	PaymentMethod order.PaymentMethod
	Shipping      order.ShippingDetails
}

// ItemResponse is the API shape of an order line snapshot
type ItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	SKUCode     string          `json:"sku_code"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// Response is the API shape of an order
type Response struct {
	ID            uuid.UUID             `json:"id"`
	OrderNo       string                `json:"order_no"`
	UserID        uuid.UUID             `json:"user_id"`
	Items         []ItemResponse        `json:"items"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	ShippingFee   decimal.Decimal       `json:"shipping_fee"`
	Total         decimal.Decimal       `json:"total"`
	Status        order.OrderStatus     `json:"status"`
	PaymentMethod order.PaymentMethod   `json:"payment_method"`
	Shipping      order.ShippingDetails `json:"shipping"`
	PaymentNote   string                `json:"payment_note,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToResponse maps a domain order to its API shape
func ToResponse(o *order.Order) Response {
	resp := Response{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		UserID:        o.UserID,
		Subtotal:      o.Subtotal,
		ShippingFee:   o.ShippingFee,
		Total:         o.Total,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Shipping:      o.Shipping,
		PaymentNote:   o.PaymentNote,
		CreatedAt:     o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID:   item.ProductID,
			VariantID:   item.VariantID,
			ProductName: item.ProductName,
			SKUCode:     item.SKUCode,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Amount:      item.Amount(),
		})
	}
	return resp
}

// ToResponses maps a slice of domain orders
func ToResponses(orders []order.Order) []Response {
	responses := make([]Response, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToResponse(&orders[i]))
	}
	return responses
}
