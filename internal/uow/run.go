package uow

import (
	"context"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/platform/metrics"
)

// Runner owns the collaborators needed to drive transactional use-cases. It is
// the only place the unit of work lifecycle is driven: services never open
// their own.
type Runner struct {
	factory SessionFactory
	bus     *events.Bus
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewRunner(factory SessionFactory, bus *events.Bus, log zerolog.Logger, m *metrics.Metrics) *Runner {
	return &Runner{factory: factory, bus: bus, log: log, metrics: m}
}

// Run executes fn inside a unit of work.
//
// When ctx already carries an ambient unit of work the existing one is reused:
// fn runs against the same session and event buffer, and neither commit nor
// close happen on inner exit; only the outermost scope commits.
//
// Otherwise a fresh unit of work is opened and bound into ctx. fn returning
// nil commits (then dispatches the buffered events); fn returning an error or
// panicking rolls back, discarding the buffer, and the error or panic is
// re-raised. The unit of work is closed on every exit path.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}

	u, ctx, err := Open(ctx, r.factory, r.bus, r.log, r.metrics)
	if err != nil {
		return err
	}
	defer func() {
		_ = u.Close(context.WithoutCancel(ctx))
	}()

	panicked := true
	defer func() {
		if panicked && u.Status() == StatusOpen {
			// fn panicked: roll back before the panic unwinds further.
			_ = u.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(ctx); err != nil {
		panicked = false
		if rbErr := u.Rollback(ctx); rbErr != nil {
			r.log.Error().Err(rbErr).Msg("rollback after use-case failure")
		}
		return err
	}
	panicked = false

	return u.Commit(ctx)
}

// RunValue is Run for use-cases that produce a result.
func RunValue[T any](ctx context.Context, r *Runner, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := r.Run(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
