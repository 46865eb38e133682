package catalog

import (
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the catalog aggregate
const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductUpdated      = "catalog.product.updated"
	EventTypeProductPriceChanged = "catalog.product.price_changed"
	EventTypeStockChanged        = "catalog.variant.stock_changed"
)

// ProductCreatedEvent is published when a product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		ProductID:       p.ID.String(),
		Name:            p.Name,
		Price:           p.Price,
	}
}

// ProductUpdatedEvent is published when product details change
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

// NewProductUpdatedEvent creates a ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		ProductID:       p.ID.String(),
		Name:            p.Name,
	}
}

// ProductPriceChangedEvent is published when the selling price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID string          `json:"product_id"`
	OldPrice  decimal.Decimal `json:"old_price"`
	NewPrice  decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, oldPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, "Product", p.ID),
		ProductID:       p.ID.String(),
		OldPrice:        oldPrice,
		NewPrice:        p.Price,
	}
}
