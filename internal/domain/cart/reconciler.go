package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the live catalog view of one variant, as seen at the moment
// of reconciliation.
type Snapshot struct {
	ProductName string
	SKUCode     string
	Price       decimal.Decimal
	Stock       int
}

// SnapshotFunc resolves a variant to its live catalog snapshot. A false
// return means the variant no longer exists; the reconciler treats such
// lines as sold out.
type SnapshotFunc func(variantID uuid.UUID) (Snapshot, bool)

// Line is one reconciled cart line with its validity flags
type Line struct {
	Item        CartItem
	Snapshot    Snapshot
	IsSoldOut   bool
	IsOverStock bool
	IsAtMax     bool
	LineTotal   decimal.Decimal
}

// Quote is the reconciled view of a whole cart. It is derived state,
// never stored: stock can change under an open cart, so validity must be
// recomputed against the latest catalog snapshot on every read.
type Quote struct {
	Lines       []Line
	Subtotal    decimal.Decimal
	CanCheckout bool
}

// Reconcile derives a Quote for the cart against live stock. The subtotal
// excludes sold-out lines; checkout is gated on every line being in stock
// and within stock.
func Reconcile(c *Cart, lookup SnapshotFunc) Quote {
	quote := Quote{
		Lines:       make([]Line, 0, len(c.Items)),
		Subtotal:    decimal.Zero,
		CanCheckout: true,
	}

	for _, item := range c.Items {
		snap, ok := lookup(item.VariantID)
		if !ok {
			snap = Snapshot{}
		}

		line := Line{
			Item:     item,
			Snapshot: snap,
		}
		line.IsSoldOut = snap.Stock <= 0
		line.IsOverStock = !line.IsSoldOut && item.Quantity > snap.Stock
		line.IsAtMax = !line.IsSoldOut && item.Quantity == snap.Stock
		line.LineTotal = snap.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))

		if line.IsSoldOut || line.IsOverStock {
			quote.CanCheckout = false
		}
		if !line.IsSoldOut {
			quote.Subtotal = quote.Subtotal.Add(line.LineTotal)
		}

		quote.Lines = append(quote.Lines, line)
	}

	return quote
}
