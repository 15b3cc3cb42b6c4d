// Package requestcontext provides HTTP-independent accessors for
// request-scoped values. Middleware sets them, services read them, and neither
// side needs net/http for it.
package requestcontext

import (
	"context"

	"petconnect/pkg/domain"
)

type (
	accountIDKey struct{}
	requestIDKey struct{}
)

// AccountID retrieves the authenticated account id from the context. Returns
// the zero value when the request is unauthenticated.
func AccountID(ctx context.Context) domain.AccountID {
	if accountID, ok := ctx.Value(accountIDKey{}).(domain.AccountID); ok {
		return accountID
	}
	return domain.AccountID{}
}

// WithAccountID injects an authenticated account id into the context.
func WithAccountID(ctx context.Context, accountID domain.AccountID) context.Context {
	return context.WithValue(ctx, accountIDKey{}, accountID)
}

// RequestID retrieves the request id from the context.
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a request id into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
