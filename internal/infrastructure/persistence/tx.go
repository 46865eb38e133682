package persistence

import (
	"context"

	"github.com/komorebi/backend/internal/domain/shared"
	"gorm.io/gorm"
)

type txKey struct{}

// GormTxRunner implements shared.TxRunner on top of GORM transactions.
// The open transaction travels in the callback's context, so every
// repository call made with that context joins the same unit of work.
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner creates a new GormTxRunner
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	return &GormTxRunner{db: db}
}

// RunInTx executes fn inside a single database transaction
func (r *GormTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction bound to ctx, or fallback when
// no transaction is open
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback
}

var _ shared.TxRunner = (*GormTxRunner)(nil)
