package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
)

// FeaturedService manages the admin-curated featured product list shown
// on the home page. The underlying store enforces the five-entry cap.
type FeaturedService struct {
	store       catalog.FeaturedStore
	productRepo catalog.ProductRepository
}

// NewFeaturedService creates a new FeaturedService
func NewFeaturedService(store catalog.FeaturedStore, productRepo catalog.ProductRepository) *FeaturedService {
	return &FeaturedService{
		store:       store,
		productRepo: productRepo,
	}
}

// List resolves the featured ids to products, in curation order.
// Products that were deleted since curation are skipped.
func (s *FeaturedService) List(ctx context.Context) ([]ProductResponse, error) {
	ids, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []ProductResponse{}, nil
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	responses := make([]ProductResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			responses = append(responses, ToProductResponse(p))
		}
	}
	return responses, nil
}

// Toggle adds the product to the featured list, or removes it when it is
// already featured. Returns true when the product ends up featured.
func (s *FeaturedService) Toggle(ctx context.Context, productID uuid.UUID) (bool, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return false, err
	}

	ids, err := s.store.List(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == productID {
			return false, s.store.Remove(ctx, productID)
		}
	}
	return true, s.store.Add(ctx, productID)
}
