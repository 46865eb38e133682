package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ProductService handles storefront and admin product operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	variantRepo    catalog.VariantRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	categoryRepo catalog.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
	}
}

// SetEventPublisher sets the event publisher
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns listed products for the storefront
func (s *ProductService) List(ctx context.Context, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindListed(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// ListAll returns every product, including unlisted ones, for the admin panel
func (s *ProductService) ListAll(ctx context.Context, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toProductResponses(products), total, nil
}

// Get returns one product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySlug resolves a shareable slug to a product
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	raw, err := catalog.DecodeSlug(slug)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return s.Get(ctx, id)
}

// ListByCategory returns listed products within one category
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]ProductResponse, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}
	products, err := s.productRepo.FindByCategory(ctx, categoryID, filter)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Search finds listed products matching a keyword. Keywords are
// NFKC-normalized and case-folded so full-width input matches ASCII
// product names.
func (s *ProductService) Search(ctx context.Context, keyword string, filter shared.Filter) ([]ProductResponse, error) {
	keyword = NormalizeKeyword(keyword)
	if keyword == "" {
		return []ProductResponse{}, nil
	}
	products, err := s.productRepo.Search(ctx, keyword, filter)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Create adds a product with its variants to the catalog
func (s *ProductService) Create(ctx context.Context, input CreateProductInput) (*ProductResponse, error) {
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProduct(input.Name, input.Description, input.Price)
	if err != nil {
		return nil, err
	}
	if err := product.Update(input.Name, input.Description, input.Material, input.Origin); err != nil {
		return nil, err
	}
	if input.ImageURL != "" {
		if err := product.SetImageURL(input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		product.SetCategory(input.CategoryID)
	}

	for _, vin := range input.Variants {
		sku := strings.ToUpper(vin.SKUCode)
		if existing, err := s.variantRepo.FindBySKU(ctx, sku); err == nil && existing != nil {
			return nil, shared.NewDomainError("SKU_TAKEN", "A variant with this SKU code already exists")
		}
		variant, err := catalog.NewProductVariant(product.ID, vin.SKUCode, vin.Color, vin.Size, vin.Stock)
		if err != nil {
			return nil, err
		}
		product.Variants = append(product.Variants, *variant)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Update edits a product's fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(input.Name, input.Description, input.Material, input.Origin); err != nil {
		return nil, err
	}
	if input.Price != nil {
		if err := product.SetPrice(*input.Price); err != nil {
			return nil, err
		}
	}
	if input.ImageURL != nil {
		if err := product.SetImageURL(*input.ImageURL); err != nil {
			return nil, err
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, shared.NewDomainError("INVALID_CATEGORY", "Category not found")
		}
		product.SetCategory(input.CategoryID)
	}
	if input.Listed != nil {
		if *input.Listed {
			product.List()
		} else {
			product.Unlist()
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ListVariants returns the variants of one product
func (s *ProductService) ListVariants(ctx context.Context, productID uuid.UUID) ([]VariantResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	variants, err := s.variantRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]VariantResponse, 0, len(variants))
	for i := range variants {
		responses = append(responses, ToVariantResponse(&variants[i]))
	}
	return responses, nil
}

// AddVariant attaches a new variant to an existing product
func (s *ProductService) AddVariant(ctx context.Context, productID uuid.UUID, input CreateVariantInput) (*VariantResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	sku := strings.ToUpper(input.SKUCode)
	if existing, err := s.variantRepo.FindBySKU(ctx, sku); err == nil && existing != nil {
		return nil, shared.NewDomainError("SKU_TAKEN", "A variant with this SKU code already exists")
	}

	variant, err := catalog.NewProductVariant(productID, input.SKUCode, input.Color, input.Size, input.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	resp := ToVariantResponse(variant)
	return &resp, nil
}

// UpdateVariant edits a variant's SKU, attributes, or stock
func (s *ProductService) UpdateVariant(ctx context.Context, variantID uuid.UUID, input UpdateVariantInput) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	if input.SKUCode != nil {
		sku := strings.ToUpper(*input.SKUCode)
		if sku != variant.SKUCode {
			if existing, err := s.variantRepo.FindBySKU(ctx, sku); err == nil && existing != nil && existing.ID != variant.ID {
				return nil, shared.NewDomainError("SKU_TAKEN", "A variant with this SKU code already exists")
			}
			if err := variant.ChangeSKU(*input.SKUCode); err != nil {
				return nil, err
			}
		}
	}

	color := variant.Color
	if input.Color != nil {
		color = *input.Color
	}
	size := variant.Size
	if input.Size != nil {
		size = *input.Size
	}
	variant.Update(color, size)

	if input.Stock != nil {
		variant.SetStock(*input.Stock)
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	resp := ToVariantResponse(variant)
	return &resp, nil
}

// DeleteVariant removes a variant from its product
func (s *ProductService) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	if _, err := s.variantRepo.FindByID(ctx, variantID); err != nil {
		return err
	}
	return s.variantRepo.Delete(ctx, variantID)
}

// SetVariantStock replaces a variant's stock level, clamped to zero
func (s *ProductService) SetVariantStock(ctx context.Context, variantID uuid.UUID, stock int) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	variant.SetStock(stock)
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	resp := ToVariantResponse(variant)
	return &resp, nil
}

// AdjustVariantStock applies a delta to a variant's stock, clamped to zero
func (s *ProductService) AdjustVariantStock(ctx context.Context, variantID uuid.UUID, delta int) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}
	variant.AdjustStock(delta)
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	resp := ToVariantResponse(variant)
	return &resp, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, product.GetDomainEvents()...)
	product.ClearDomainEvents()
}

var keywordCaser = cases.Fold()

// NormalizeKeyword prepares a search keyword: NFKC normalization folds
// full-width characters to their ASCII forms, case folding removes case
// distinctions, and surrounding whitespace is dropped.
func NormalizeKeyword(keyword string) string {
	keyword = norm.NFKC.String(keyword)
	keyword = keywordCaser.String(keyword)
	return strings.TrimSpace(keyword)
}

func toProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
