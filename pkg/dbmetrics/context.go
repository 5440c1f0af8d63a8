package dbmetrics

import "context"

type txContextKey struct{}

// WithExecutor stores a transaction executor in the context.
// Repositories pick it up through GetExecutor so the same repository code
// runs both inside and outside transactions.
func WithExecutor(ctx context.Context, tx DBExecutor) context.Context {
	return context.WithValue(ctx, txContextKey{}, tx)
}

// GetExecutor returns the transaction executor carried by ctx, or fallback
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txContextKey{}).(DBExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction reports whether ctx carries a transaction executor
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txContextKey{}).(DBExecutor)
	return ok
}
