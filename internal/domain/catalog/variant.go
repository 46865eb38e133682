package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
)

// ProductVariant is a specific color/size combination of a product with
// its own stock count. SKU codes are unique across the catalog.
//
// Stock never goes negative: writes that would drop below zero clamp to
// zero instead of failing. Overselling is prevented upstream by the cart
// reconciler's checkout gate, not here.
type ProductVariant struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	SKUCode   string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Color     string    `gorm:"type:varchar(50)"`
	Size      string    `gorm:"type:varchar(50)"`
	Stock     int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant for a product
func NewProductVariant(productID uuid.UUID, skuCode, color, size string, stock int) (*ProductVariant, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := validateSKUCode(skuCode); err != nil {
		return nil, err
	}
	if stock < 0 {
		stock = 0
	}

	return &ProductVariant{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		SKUCode:    strings.ToUpper(skuCode),
		Color:      color,
		Size:       size,
		Stock:      stock,
	}, nil
}

// Update edits the variant's descriptive attributes
func (v *ProductVariant) Update(color, size string) {
	v.Color = color
	v.Size = size
	v.UpdatedAt = time.Now()
}

// ChangeSKU replaces the SKU code after validation
func (v *ProductVariant) ChangeSKU(code string) error {
	if err := validateSKUCode(code); err != nil {
		return err
	}
	v.SKUCode = strings.ToUpper(code)
	v.UpdatedAt = time.Now()
	return nil
}

// SetStock replaces the stock level, clamping to zero
func (v *ProductVariant) SetStock(stock int) {
	if stock < 0 {
		stock = 0
	}
	v.Stock = stock
	v.UpdatedAt = time.Now()
}

// AdjustStock applies a delta to the stock level, clamping to zero
func (v *ProductVariant) AdjustStock(delta int) {
	v.SetStock(v.Stock + delta)
}

// DecrementStock reduces stock by the purchased quantity, clamping to zero
func (v *ProductVariant) DecrementStock(qty int) {
	if qty <= 0 {
		return
	}
	v.SetStock(v.Stock - qty)
}

// IsSoldOut returns true when the variant has no stock
func (v *ProductVariant) IsSoldOut() bool {
	return v.Stock <= 0
}

func validateSKUCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}
