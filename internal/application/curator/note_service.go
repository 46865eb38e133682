package curator

import (
	"context"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/catalog"
	"github.com/komorebi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// NoteRequest carries the product facts handed to the generator
type NoteRequest struct {
	Name        string
	Description string
	Material    string
	Origin      string
}

// NoteGenerator produces a short curator's note for a product. The
// storefront treats the note as ephemeral: it is generated on request
// and never stored.
type NoteGenerator interface {
	GenerateNote(ctx context.Context, req NoteRequest) (string, error)
}

// NoteResponse is the API shape of a generated note
type NoteResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Note      string    `json:"note"`
}

// Service generates curator notes for catalog products
type Service struct {
	productRepo catalog.ProductRepository
	generator   NoteGenerator
	logger      *zap.Logger
}

// NewService creates a new curator Service
func NewService(productRepo catalog.ProductRepository, generator NoteGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		productRepo: productRepo,
		generator:   generator,
		logger:      logger,
	}
}

// GenerateNote produces a curator's note for one product
func (s *Service) GenerateNote(ctx context.Context, productID uuid.UUID) (*NoteResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	note, err := s.generator.GenerateNote(ctx, NoteRequest{
		Name:        product.Name,
		Description: product.Description,
		Material:    product.Material,
		Origin:      product.Origin,
	})
	if err != nil {
		s.logger.Warn("Curator note generation failed",
			zap.String("product_id", productID.String()),
			zap.Error(err))
		return nil, shared.ErrGenerationFailed
	}

	return &NoteResponse{ProductID: product.ID, Note: note}, nil
}
