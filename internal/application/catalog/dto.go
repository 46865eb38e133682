package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductInput carries the fields for a new catalog product
type CreateProductInput struct {
	Name        string
	Description string
	Material    string
	Origin      string
	Price       decimal.Decimal
	ImageURL    string
	CategoryID  *uuid.UUID
	Variants    []CreateVariantInput
}

// CreateVariantInput carries the fields for a new product variant
type CreateVariantInput struct {
	SKUCode string
	Color   string
	Size    string
	Stock   int
}

// UpdateVariantInput carries the editable variant fields. Nil fields
// keep their current value.
type UpdateVariantInput struct {
	SKUCode *string
	Color   *string
	Size    *string
	Stock   *int
}

// UpdateProductInput carries the editable product fields
type UpdateProductInput struct {
	Name        string
	Description string
	Material    string
	Origin      string
	Price       *decimal.Decimal
	ImageURL    *string
	CategoryID  *uuid.UUID
	Listed      *bool
}

// VariantResponse is the API shape of a product variant
type VariantResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	SKUCode   string    `json:"sku_code"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Stock     int       `json:"stock"`
}

// ProductResponse is the API shape of a catalog product
type ProductResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Material    string            `json:"material,omitempty"`
	Origin      string            `json:"origin,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    string            `json:"image_url"`
	CategoryID  *uuid.UUID        `json:"category_id,omitempty"`
	Listed      bool              `json:"listed"`
	Slug        string            `json:"slug"`
	TotalStock  int               `json:"total_stock"`
	Variants    []VariantResponse `json:"variants,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// CategoryResponse is the API shape of a category
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// ToVariantResponse maps a domain variant to its API shape
func ToVariantResponse(v *catalog.ProductVariant) VariantResponse {
	return VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		SKUCode:   v.SKUCode,
		Color:     v.Color,
		Size:      v.Size,
		Stock:     v.Stock,
	}
}

// ToProductResponse maps a domain product to its API shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Material:    p.Material,
		Origin:      p.Origin,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		Listed:      p.Listed,
		Slug:        catalog.EncodeSlug(p.ID.String(), p.Name),
		TotalStock:  p.TotalStock(),
		CreatedAt:   p.CreatedAt,
	}
	for i := range p.Variants {
		resp.Variants = append(resp.Variants, ToVariantResponse(&p.Variants[i]))
	}
	return resp
}

// ToCategoryResponse maps a domain category to its API shape
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}
