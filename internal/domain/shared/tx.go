package shared

import "context"

// TxRunner runs a function inside a single storage transaction. Every
// repository call made with the callback's context joins that
// transaction; an error rolls the whole unit back. Used where a business
// operation must not partially apply, such as order placement.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxRunner executes the callback without any transaction. Useful for
// tests and in-memory setups.
type NopTxRunner struct{}

// RunInTx calls fn directly
func (NopTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
