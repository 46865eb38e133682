package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/cart"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/order"
	"github.com/komorebi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service composes and manages orders
type Service struct {
	orderRepo      order.Repository
	cartRepo       cart.Repository
	productRepo    catalog.ProductRepository
	variantRepo    catalog.VariantRepository
	tx             shared.TxRunner
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	tx shared.TxRunner,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		variantRepo: variantRepo,
		tx:          tx,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder turns the user's cart into an order. The cart must be
// non-empty and pass the reconciler's checkout gate against live stock.
// Order creation, stock decrements and the cart clear commit as one
// transaction so a failure can never leave the three half-applied.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*Response, error) {
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot check out an empty cart")
	}

	var placed *order.Order
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		// Live stock is re-read inside the transaction: it is the only
		// safeguard against a concurrent admin edit or purchase.
		quote := cart.Reconcile(c, s.snapshot(ctx))
		if !quote.CanCheckout {
			return shared.ErrCartNotReady
		}

		items := make([]order.ItemInput, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			items = append(items, order.ItemInput{
				ProductID:   line.Item.ProductID,
				VariantID:   line.Item.VariantID,
				ProductName: line.Snapshot.ProductName,
				SKUCode:     line.Snapshot.SKUCode,
				UnitPrice:   line.Snapshot.Price,
				Quantity:    line.Item.Quantity,
			})
		}

		o, err := order.NewOrder(userID, items, input.PaymentMethod, input.Shipping)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Save(ctx, o); err != nil {
			return err
		}

		for _, line := range quote.Lines {
			variant, err := s.variantRepo.FindByID(ctx, line.Item.VariantID)
			if err != nil {
				return err
			}
			variant.DecrementStock(line.Item.Quantity)
			if err := s.variantRepo.Save(ctx, variant); err != nil {
				return err
			}
		}

		c.Clear()
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_no", placed.OrderNo),
		zap.String("user_id", userID.String()),
		zap.String("total", placed.Total.String()))
	s.publishEvents(ctx, placed)

	resp := ToResponse(placed)
	return &resp, nil
}

// Get returns one order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToResponse(o)
	return &resp, nil
}

// ListAll returns every order for the admin panel, newest first
func (s *Service) ListAll(ctx context.Context, filter shared.Filter) ([]Response, int64, error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToResponses(orders), total, nil
}

// ListMine returns the user's own orders, newest first
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Response, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToResponses(orders), nil
}

// UpdateStatus reassigns an order's status (admin). The owner sees the
// change on their next order read; there is no separate cached copy to
// sync.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status order.OrderStatus) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.SetStatus(status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, o)

	resp := ToResponse(o)
	return &resp, nil
}

// SetPaymentNote lets the owner attach a bank-transfer reference
func (s *Service) SetPaymentNote(ctx context.Context, id, userID uuid.UUID, note string) (*Response, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}
	if err := o.SetPaymentNote(note); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	resp := ToResponse(o)
	return &resp, nil
}

func (s *Service) snapshot(ctx context.Context) cart.SnapshotFunc {
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

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, o.GetDomainEvents()...)
	o.ClearDomainEvents()
}
