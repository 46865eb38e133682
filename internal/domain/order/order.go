package order

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod is how the order is paid and delivered
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodStorePickup  PaymentMethod = "STORE_PICKUP"
)

// IsValid checks if the payment method is known
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodStorePickup
}

// Shipping fee policy: orders over the free-shipping threshold ship free,
// everything else pays the flat fee.
var (
	freeShippingThreshold = decimal.NewFromInt(200)
	flatShippingFee       = decimal.NewFromInt(15)
)

// ShippingFee returns the fee for a given checkoutable subtotal
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(freeShippingThreshold) {
		return decimal.Zero
	}
	return flatShippingFee
}

// ShippingDetails carries the contact and delivery information collected
// at checkout. Address fields apply to bank-transfer delivery; store
// fields apply to store pickup.
type ShippingDetails struct {
	FullName  string `gorm:"column:ship_full_name;type:varchar(100)"`
	Phone     string `gorm:"column:ship_phone;type:varchar(30)"`
	Email     string `gorm:"column:ship_email;type:varchar(200)"`
	Address   string `gorm:"column:ship_address;type:varchar(300)"`
	City      string `gorm:"column:ship_city;type:varchar(100)"`
	StoreCode string `gorm:"column:ship_store_code;type:varchar(30)"`
	StoreName string `gorm:"column:ship_store_name;type:varchar(100)"`
}

// Validate checks the details against the chosen payment method
func (d ShippingDetails) Validate(method PaymentMethod) error {
	if d.FullName == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Full name is required")
	}
	if d.Phone == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Phone is required")
	}
	if d.Email == "" {
		return shared.NewDomainError("INVALID_SHIPPING", "Email is required")
	}
	switch method {
	case PaymentMethodBankTransfer:
		if d.Address == "" || d.City == "" {
			return shared.NewDomainError("INVALID_SHIPPING", "Address and city are required for bank transfer delivery")
		}
	case PaymentMethodStorePickup:
		if d.StoreCode == "" || d.StoreName == "" {
			return shared.NewDomainError("INVALID_SHIPPING", "Store code and store name are required for store pickup")
		}
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}
	return nil
}

// OrderItem is an immutable snapshot of one purchased line. Name, SKU and
// unit price are copied at purchase time so later catalog edits never
// change what the customer bought.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	SKUCode     string          `gorm:"type:varchar(50);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity    int             `gorm:"not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Amount returns unit price times quantity
func (i OrderItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewOrderItem snapshots a purchased line
func NewOrderItem(orderID, productID, variantID uuid.UUID, productName, skuCode string, unitPrice decimal.Decimal, quantity int) (*OrderItem, error) {
	if productID == uuid.Nil || variantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product and variant IDs cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product name cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		VariantID:   variantID,
		ProductName: productName,
		SKUCode:     skuCode,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
		CreatedAt:   time.Now(),
	}, nil
}

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseAggregateRoot
	OrderNo       string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Shipping      ShippingDetails `gorm:"embedded"`
	PaymentNote   string          `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// ItemInput is one purchasable line handed to NewOrder
type ItemInput struct {
	ProductID   uuid.UUID
	VariantID   uuid.UUID
	ProductName string
	SKUCode     string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// NewOrder composes an order from checkoutable lines. The subtotal is
// computed from the given lines only: the caller passes the same subset
// that passed the checkout gate, so display subtotal and charged total
// always agree. Initial status is PENDING.
func NewOrder(userID uuid.UUID, items []ItemInput, method PaymentMethod, shipping ShippingDetails) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}
	if err := shipping.Validate(method); err != nil {
		return nil, err
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           NewOrderNo(),
		UserID:            userID,
		Status:            OrderStatusPending,
		PaymentMethod:     method,
		Shipping:          shipping,
		Subtotal:          decimal.Zero,
	}

	for _, in := range items {
		item, err := NewOrderItem(o.ID, in.ProductID, in.VariantID, in.ProductName, in.SKUCode, in.UnitPrice, in.Quantity)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
		o.Subtotal = o.Subtotal.Add(item.Amount())
	}

	o.ShippingFee = ShippingFee(o.Subtotal)
	o.Total = o.Subtotal.Add(o.ShippingFee)

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// SetStatus reassigns the order status. Any valid status is reachable
// from any other; this is an admin back-office control, not a workflow
// engine.
func (o *Order) SetStatus(status OrderStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", status))
	}
	if o.Status == status {
		return nil
	}

	old := o.Status
	o.Status = status
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, old))

	return nil
}

// SetPaymentNote attaches a bank-transfer reference note
func (o *Order) SetPaymentNote(note string) error {
	if len(note) > 200 {
		return shared.NewDomainError("INVALID_PAYMENT_NOTE", "Payment note cannot exceed 200 characters")
	}
	o.PaymentNote = note
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// BelongsTo reports whether the order is owned by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// NewOrderNo generates a human-facing order number
func NewOrderNo() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
}
