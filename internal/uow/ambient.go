package uow

import "context"

type ctxKey struct{}

var uowKey = ctxKey{}

// With binds a unit of work into ctx as the ambient transaction scope.
func With(ctx context.Context, u *UnitOfWork) context.Context {
	return context.WithValue(ctx, uowKey, u)
}

// From extracts the ambient unit of work, if any.
func From(ctx context.Context) (*UnitOfWork, bool) {
	u, ok := ctx.Value(uowKey).(*UnitOfWork)
	return u, ok
}

// MustFrom returns the ambient unit of work and panics when absent. Services
// call it inside operations the decorator is contractually required to wrap,
// so absence is a wiring bug, not a runtime condition.
func MustFrom(ctx context.Context) *UnitOfWork {
	u, ok := From(ctx)
	if !ok {
		panic("uow: no ambient unit of work; operation must run under uow.Run")
	}
	return u
}
