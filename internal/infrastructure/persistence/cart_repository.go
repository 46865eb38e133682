package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/komorebi/backend/internal/domain/cart"
	"github.com/komorebi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

// FindByUser returns the user's cart with its items
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.conn(ctx).Preload("Items").
		Where("user_id = ?", userID).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Save persists the cart and replaces its item rows. Items removed from
// the aggregate are deleted, so the stored cart always mirrors the
// in-memory one.
func (r *GormCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	db := r.conn(ctx)

	keep := make([]uuid.UUID, 0, len(c.Items))
	for _, item := range c.Items {
		keep = append(keep, item.ID)
	}

	stale := db.Where("cart_id = ?", c.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&cart.CartItem{}).Error; err != nil {
		return err
	}

	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(c).Error
}

// Delete deletes a cart and its items
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Delete(&cart.CartItem{}, "cart_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&cart.Cart{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
