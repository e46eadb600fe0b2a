package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key for the ambient transaction.
type txKey struct{}

// requestIDKey is the context key for request ID propagation into
// persistence-layer logs.
type requestIDKey struct{}

// TxFromContext retrieves the GORM transaction from context, or nil.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx attaches a GORM transaction to the context.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// RequestIDFromContext retrieves the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID attaches a request ID to the context.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
