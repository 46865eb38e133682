package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	// FindAll returns all orders, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	// FindByUser returns the user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, o *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
