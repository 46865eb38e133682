package inquiry

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/shared"
)

// Repository defines persistence operations for inquiries
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Inquiry, error)
	// FindAll returns inquiries, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Inquiry, error)
	Save(ctx context.Context, i *Inquiry) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
