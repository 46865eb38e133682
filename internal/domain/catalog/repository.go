package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindListed(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Search(ctx context.Context, keyword string, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// VariantRepository defines persistence operations for product variants
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductVariant, error)
	FindBySKU(ctx context.Context, skuCode string) (*ProductVariant, error)
	Save(ctx context.Context, variant *ProductVariant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeaturedStore holds the admin-curated featured product id list.
// The list is capped at MaxFeatured entries; Add past the cap fails.
type FeaturedStore interface {
	List(ctx context.Context) ([]uuid.UUID, error)
	Add(ctx context.Context, productID uuid.UUID) error
	Remove(ctx context.Context, productID uuid.UUID) error
}

// MaxFeatured is the cap on the featured product list
const MaxFeatured = 5
