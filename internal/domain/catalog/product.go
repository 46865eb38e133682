package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is the aggregate root for a curated catalog item.
// Per-SKU stock lives on ProductVariant; a product with no variants
// is not sellable.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Material    string          `gorm:"type:varchar(100)"`
	Origin      string          `gorm:"type:varchar(100)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ImageURL    string          `gorm:"type:varchar(500)"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Listed      bool            `gorm:"not null;default:true"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new listed product
func NewProduct(name, description string, price decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		Listed:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, material, origin string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Material = material
	p.Origin = origin
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price. Existing order item snapshots are
// unaffected: the price is locked into the order at purchase time.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	old := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))

	return nil
}

// SetImageURL sets the product image URL
func (p *Product) SetImageURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_IMAGE_URL", "Image URL cannot exceed 500 characters")
	}

	p.ImageURL = url
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory assigns the product to a category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// List makes the product visible in the storefront
func (p *Product) List() {
	if p.Listed {
		return
	}
	p.Listed = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Unlist hides the product from the storefront without deleting it
func (p *Product) Unlist() {
	if !p.Listed {
		return
	}
	p.Listed = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// TotalStock returns the stock summed over all variants
func (p *Product) TotalStock() int {
	total := 0
	for i := range p.Variants {
		total += p.Variants[i].Stock
	}
	return total
}

// IsSoldOut returns true when no variant has stock
func (p *Product) IsSoldOut() bool {
	return p.TotalStock() <= 0
}

// FindVariant returns the variant with the given ID, or nil
func (p *Product) FindVariant(variantID uuid.UUID) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
