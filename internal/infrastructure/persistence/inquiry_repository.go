package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/inquiry"
	"github.com/komorebi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInquiryRepository implements inquiry.Repository using GORM
type GormInquiryRepository struct {
	db *gorm.DB
}

// NewGormInquiryRepository creates a new GormInquiryRepository
func NewGormInquiryRepository(db *gorm.DB) *GormInquiryRepository {
	return &GormInquiryRepository{db: db}
}

func (r *GormInquiryRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByID finds an inquiry by its ID
func (r *GormInquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inquiry.Inquiry, error) {
	var i inquiry.Inquiry
	if err := r.conn(ctx).First(&i, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// FindAll finds inquiries matching the filter, newest first by default
func (r *GormInquiryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inquiry.Inquiry, error) {
	var inquiries []inquiry.Inquiry
	query := r.applyFilter(r.conn(ctx).Model(&inquiry.Inquiry{}), filter)

	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// Save creates or updates an inquiry
func (r *GormInquiryRepository) Save(ctx context.Context, i *inquiry.Inquiry) error {
	return r.conn(ctx).Save(i).Error
}

// Count counts inquiries matching the filter
func (r *GormInquiryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.conn(ctx).Model(&inquiry.Inquiry{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInquiryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InquirySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInquiryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// Ensure GormInquiryRepository implements inquiry.Repository
var _ inquiry.Repository = (*GormInquiryRepository)(nil)
