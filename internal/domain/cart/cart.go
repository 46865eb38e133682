package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
)

// Cart is the aggregate root for a member's shopping cart. One cart per
// user; lines are keyed by variant.
//
// Quantity rules deliberately avoid hard failures: adding past live stock
// holds the line at its current quantity, and explicit quantity writes are
// clamped into [1, stock]. The reconciler re-derives validity against the
// live catalog on every read, so a cart that drifted out of sync (admin
// stock edit, another session's purchase) is caught at the checkout gate.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is one line in a cart: a variant reference plus quantity
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	VariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}, nil
}

// FindItem returns the line for a variant, or nil
func (c *Cart) FindItem(variantID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem adds qty of a variant given its live stock level. Adding a
// sold-out variant is a no-op. Merging into an existing line never pushes
// the quantity past live stock; when it would, the line keeps its current
// quantity.
func (c *Cart) AddItem(productID, variantID uuid.UUID, liveStock, qty int) {
	if liveStock <= 0 {
		return
	}
	if qty < 1 {
		qty = 1
	}

	if item := c.FindItem(variantID); item != nil {
		if item.Quantity+qty > liveStock {
			return
		}
		item.Quantity += qty
		item.UpdatedAt = time.Now()
		c.touch()
		return
	}

	if qty > liveStock {
		qty = liveStock
	}
	c.Items = append(c.Items, CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		VariantID:  variantID,
		Quantity:   qty,
	})
	c.touch()
}

// SetQuantity replaces a line's quantity, clamped into [1, liveStock].
// Unknown variants are ignored.
func (c *Cart) SetQuantity(variantID uuid.UUID, qty, liveStock int) {
	item := c.FindItem(variantID)
	if item == nil {
		return
	}
	if qty < 1 {
		qty = 1
	}
	if liveStock > 0 && qty > liveStock {
		qty = liveStock
	}
	item.Quantity = qty
	item.UpdatedAt = time.Now()
	c.touch()
}

// UpdateQuantity applies a delta to a line. Increases apply only while the
// result stays within live stock; decreases stop at 1. Removing the line
// is a separate explicit action.
func (c *Cart) UpdateQuantity(variantID uuid.UUID, delta, liveStock int) {
	item := c.FindItem(variantID)
	if item == nil {
		return
	}
	if delta > 0 && item.Quantity+delta > liveStock {
		return
	}
	next := item.Quantity + delta
	if next < 1 {
		return
	}
	item.Quantity = next
	item.UpdatedAt = time.Now()
	c.touch()
}

// RemoveItem drops a line unconditionally
func (c *Cart) RemoveItem(variantID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].VariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.touch()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
