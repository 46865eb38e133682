package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/inquiry"
	"github.com/komorebi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SubmitInput contains a contact form submission
type SubmitInput struct {
	Name    string
	Email   string
	Message string
}

// Response is the API shape of an inquiry
type Response struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Message   string         `json:"message"`
	Status    inquiry.Status `json:"status"`
	RepliedAt *time.Time     `json:"replied_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ToResponse maps a domain inquiry to its API shape
func ToResponse(i *inquiry.Inquiry) Response {
	return Response{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Message:   i.Message,
		Status:    i.Status,
		RepliedAt: i.RepliedAt,
		CreatedAt: i.CreatedAt,
	}
}

// Service handles contact inquiries
type Service struct {
	repo   inquiry.Repository
	logger *zap.Logger
}

// NewService creates a new inquiry Service
func NewService(repo inquiry.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Submit records a contact form submission
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Response, error) {
	i, err := inquiry.NewInquiry(input.Name, input.Email, input.Message)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, i); err != nil {
		return nil, err
	}

	s.logger.Info("Inquiry submitted",
		zap.String("inquiry_id", i.ID.String()),
		zap.String("email", i.Email))

	resp := ToResponse(i)
	return &resp, nil
}

// List returns inquiries for the admin panel, newest first
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]Response, int64, error) {
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]Response, 0, len(items))
	for idx := range items {
		responses = append(responses, ToResponse(&items[idx]))
	}
	return responses, total, nil
}

// MarkReplied marks an inquiry as answered
func (s *Service) MarkReplied(ctx context.Context, id uuid.UUID) (*Response, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	i.MarkReplied()
	if err := s.repo.Save(ctx, i); err != nil {
		return nil, err
	}

	resp := ToResponse(i)
	return &resp, nil
}
