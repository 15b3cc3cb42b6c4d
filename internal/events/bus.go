package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"petconnect/internal/platform/metrics"
)

// Handler reacts to one event. Handlers run post-commit; a failure cannot roll
// back the transaction that produced the event.
type Handler func(ctx context.Context, e Event) error

// Bus maps event kinds to ordered handler lists. The table is built during
// startup and read-only afterwards: Subscribe after Seal panics, which turns a
// wiring mistake into an immediate startup failure instead of a race.
type Bus struct {
	handlers map[Kind][]Handler
	sealed   bool
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// NewBus builds an empty bus. metrics may be nil in tests.
func NewBus(log zerolog.Logger, m *metrics.Metrics) *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		log:      log.With().Str("component", "eventbus").Logger(),
		metrics:  m,
	}
}

// Subscribe registers a handler for kind. Multiple handlers per kind are
// allowed; dispatch order equals subscription order.
func (b *Bus) Subscribe(kind Kind, h Handler) {
	if b.sealed {
		panic(fmt.Sprintf("events: subscribe to %q after bus was sealed", kind))
	}
	b.handlers[kind] = append(b.handlers[kind], h)
}

// Seal freezes the subscription table. Called once when the application root
// finishes wiring.
func (b *Bus) Seal() { b.sealed = true }

// Publish dispatches evs in FIFO order, awaiting every handler. The first
// handler failure stops the publish and propagates to the caller; remaining
// handlers (for that event and the events after it) are not invoked. No
// retries, no persistence.
func (b *Bus) Publish(ctx context.Context, evs []Event) error {
	for _, e := range evs {
		if b.metrics != nil {
			b.metrics.EventsDispatched.Inc()
		}
		for _, h := range b.handlers[e.EventKind()] {
			if err := h(ctx, e); err != nil {
				if b.metrics != nil {
					b.metrics.HandlerFailures.Inc()
				}
				b.log.Error().
					Str("event", string(e.EventKind())).
					Str("actor", e.Actor()).
					Err(err).
					Msg("event handler failed")
				return fmt.Errorf("handle %s: %w", e.EventKind(), err)
			}
		}
	}
	return nil
}
