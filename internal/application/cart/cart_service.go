package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/cart"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineView is one reconciled cart line as rendered by the API
type LineView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	VariantID   uuid.UUID       `json:"variant_id"`
	ProductName string          `json:"product_name"`
	SKUCode     string          `json:"sku_code"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Stock       int             `json:"stock"`
	IsSoldOut   bool            `json:"is_sold_out"`
	IsOverStock bool            `json:"is_over_stock"`
	IsAtMax     bool            `json:"is_at_max"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// View is the reconciled cart returned by every cart read and mutation.
// Validity flags and the subtotal are recomputed against live stock on
// each call, never cached.
type View struct {
	Lines       []LineView      `json:"lines"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	CanCheckout bool            `json:"can_checkout"`
}

// Service handles cart operations for the authenticated member
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	variantRepo catalog.VariantRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, variantRepo catalog.VariantRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// Get returns the user's reconciled cart
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*View, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// AddItem puts qty of a variant into the cart. Sold-out variants are
// ignored without error, matching the storefront's silent-hold behavior.
func (s *Service) AddItem(ctx context.Context, userID, variantID uuid.UUID, qty int) (*View, error) {
	variant, err := s.variantRepo.FindByID(ctx, variantID)
	if err != nil {
		return nil, err
	}

	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.AddItem(variant.ProductID, variant.ID, variant.Stock, qty)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// SetQuantity replaces a line's quantity, clamped into [1, live stock]
func (s *Service) SetQuantity(ctx context.Context, userID, variantID uuid.UUID, qty int) (*View, error) {
	return s.mutate(ctx, userID, func(c *cart.Cart, stock int) {
		c.SetQuantity(variantID, qty, stock)
	}, variantID)
}

// UpdateQuantity applies a +/- delta to a line
func (s *Service) UpdateQuantity(ctx context.Context, userID, variantID uuid.UUID, delta int) (*View, error) {
	return s.mutate(ctx, userID, func(c *cart.Cart, stock int) {
		c.UpdateQuantity(variantID, delta, stock)
	}, variantID)
}

// RemoveItem drops a line unconditionally
func (s *Service) RemoveItem(ctx context.Context, userID, variantID uuid.UUID) (*View, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.RemoveItem(variantID)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

// Clear empties the user's cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	c.Clear()
	return s.cartRepo.Save(ctx, c)
}

func (s *Service) mutate(ctx context.Context, userID uuid.UUID, fn func(c *cart.Cart, liveStock int), variantID uuid.UUID) (*View, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	stock := 0
	if variant, err := s.variantRepo.FindByID(ctx, variantID); err == nil {
		stock = variant.Stock
	}

	fn(c, stock)
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *Service) loadOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	return cart.NewCart(userID)
}

// Snapshot builds the live-stock lookup the reconciler runs against
func (s *Service) Snapshot(ctx context.Context) cart.SnapshotFunc {
	return func(variantID uuid.UUID) (cart.Snapshot, bool) {
		variant, err := s.variantRepo.FindByID(ctx, variantID)
		if err != nil {
			return cart.Snapshot{}, false
		}
		product, err := s.productRepo.FindByID(ctx, variant.ProductID)
		if err != nil {
			return cart.Snapshot{}, false
		}
		return cart.Snapshot{
			ProductName: product.Name,
			SKUCode:     variant.SKUCode,
			Price:       product.Price,
			Stock:       variant.Stock,
		}, true
	}
}

func (s *Service) view(ctx context.Context, c *cart.Cart) (*View, error) {
	quote := cart.Reconcile(c, s.Snapshot(ctx))

	view := &View{
		Lines:       make([]LineView, 0, len(quote.Lines)),
		Subtotal:    quote.Subtotal,
		CanCheckout: quote.CanCheckout,
	}
	for _, line := range quote.Lines {
		view.Lines = append(view.Lines, LineView{
			ProductID:   line.Item.ProductID,
			VariantID:   line.Item.VariantID,
			ProductName: line.Snapshot.ProductName,
			SKUCode:     line.Snapshot.SKUCode,
			UnitPrice:   line.Snapshot.Price,
			Quantity:    line.Item.Quantity,
			Stock:       line.Snapshot.Stock,
			IsSoldOut:   line.IsSoldOut,
			IsOverStock: line.IsOverStock,
			IsAtMax:     line.IsAtMax,
			LineTotal:   line.LineTotal,
		})
	}
	return view, nil
}
