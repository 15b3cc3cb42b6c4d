// Package uow implements the unit of work: a scoped transactional session
// with a deferred event buffer. Events emitted inside a unit of work reach the
// bus if and only if the session commits, in FIFO order, exactly once.
package uow

import (
	"context"

	"github.com/rs/zerolog"

	"petconnect/internal/events"
	"petconnect/internal/platform/metrics"
	dErrors "petconnect/pkg/domain-errors"
)

// Status is the unit of work lifecycle state. Legal transitions:
// open → committed → closed, or open → rolled back → closed.
type Status int

const (
	StatusOpen Status = iota
	StatusCommitted
	StatusRolledBack
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusCommitted:
		return "committed"
	case StatusRolledBack:
		return "rolled back"
	default:
		return "closed"
	}
}

// ErrNotOpen is returned when an operation requires an open unit of work.
var ErrNotOpen = dErrors.New(dErrors.CodeInternal, "unit of work is not open")

// Session is the transactional handle a unit of work owns exclusively.
// Bind attaches the session to a context so stores can join the transaction.
type Session interface {
	Bind(ctx context.Context) context.Context
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SessionFactory opens a fresh session per unit of work.
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}

// UnitOfWork groups persistence operations and deferred events into one
// atomic commit. It is short-lived and never shared between requests.
type UnitOfWork struct {
	session Session
	bus     *events.Bus
	pending []events.Event
	status  Status
	log     zerolog.Logger
	metrics *metrics.Metrics

	// publishCtx is the context as it was before the session and the unit of
	// work were bound. Handlers run after commit, outside the transaction:
	// dispatching on the bound context would hand them a dead transaction
	// handle and a closed ambient unit of work.
	publishCtx context.Context
}

// Open acquires a session and returns the unit of work together with a
// context carrying both the ambient unit of work and the bound session.
func Open(ctx context.Context, factory SessionFactory, bus *events.Bus, log zerolog.Logger, m *metrics.Metrics) (*UnitOfWork, context.Context, error) {
	session, err := factory.Open(ctx)
	if err != nil {
		return nil, ctx, dErrors.Wrap(err, dErrors.CodeInternal, "open session")
	}
	u := &UnitOfWork{
		session:    session,
		bus:        bus,
		status:     StatusOpen,
		log:        log.With().Str("component", "uow").Logger(),
		metrics:    m,
		publishCtx: ctx,
	}
	ctx = session.Bind(ctx)
	ctx = With(ctx, u)
	return u, ctx, nil
}

// Status reports the current lifecycle state.
func (u *UnitOfWork) Status() Status { return u.status }

// EmitEvent appends e to the pending buffer. Emitting on a unit of work that
// is no longer open is a programming error and fails loudly.
func (u *UnitOfWork) EmitEvent(e events.Event) error {
	if u.status != StatusOpen {
		return ErrNotOpen
	}
	u.pending = append(u.pending, e)
	return nil
}

// Pending exposes the buffered events for assertions in tests.
func (u *UnitOfWork) Pending() []events.Event { return u.pending }

// Commit commits the session and, only after the commit returned success,
// publishes the buffered events in emission order. A publish failure cannot
// undo the commit: it is logged, counted, and returned as a post-commit error
// so the edge can surface a 5xx while the committed state stands.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.status != StatusOpen {
		return ErrNotOpen
	}

	if err := u.session.Commit(ctx); err != nil {
		// The transaction did not land; behave as rollback so close is clean.
		_ = u.session.Rollback(ctx)
		u.status = StatusRolledBack
		u.pending = nil
		if u.metrics != nil {
			u.metrics.UoWRollbacks.Inc()
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "commit failed")
	}

	u.status = StatusCommitted
	if u.metrics != nil {
		u.metrics.UoWCommits.Inc()
	}

	buffered := u.pending
	u.pending = nil
	if len(buffered) == 0 {
		return nil
	}
	if err := u.bus.Publish(u.publishCtx, buffered); err != nil {
		u.log.Error().Err(err).Msg("post-commit event dispatch failed")
		// The commit already stands; whatever domain code the handler failed
		// with must not leak into the response for the committed operation.
		return dErrors.Wrap(err, dErrors.CodeInternal, "post-commit dispatch")
	}
	return nil
}

// Rollback discards the buffer and rolls the session back. Pending events are
// never published.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.status != StatusOpen {
		return ErrNotOpen
	}
	u.pending = nil
	u.status = StatusRolledBack
	if u.metrics != nil {
		u.metrics.UoWRollbacks.Inc()
	}
	if err := u.session.Rollback(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "rollback failed")
	}
	return nil
}

// Close releases the unit of work. Idempotent; closing while still open
// behaves as rollback.
func (u *UnitOfWork) Close(ctx context.Context) error {
	switch u.status {
	case StatusClosed:
		return nil
	case StatusOpen:
		if err := u.Rollback(ctx); err != nil {
			u.status = StatusClosed
			return err
		}
	}
	u.status = StatusClosed
	return nil
}
