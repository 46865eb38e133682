package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts
type Repository interface {
	// FindByUser returns the user's cart, or shared.ErrNotFound
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
