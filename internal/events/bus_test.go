package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kindTest Kind = "TestEvent"

type testEvent struct {
	Meta
	seq int
}

func (testEvent) EventKind() Kind { return kindTest }

func newTestBus() *Bus { return NewBus(zerolog.Nop(), nil) }

func TestMeta_DefaultsToExternalActor(t *testing.T) {
	m := NewMeta("")
	assert.Equal(t, ActorExternal, m.Actor())
	assert.WithinDuration(t, time.Now(), m.IssuedAt(), time.Second)
}

func TestPublish_FIFOAcrossEventsAndHandlers(t *testing.T) {
	bus := newTestBus()

	var seen []string
	bus.Subscribe(kindTest, func(_ context.Context, e Event) error {
		seen = append(seen, "first", e.(testEvent).Actor())
		return nil
	})
	bus.Subscribe(kindTest, func(_ context.Context, e Event) error {
		seen = append(seen, "second")
		return nil
	})

	evs := []Event{
		testEvent{Meta: NewMeta("a")},
		testEvent{Meta: NewMeta("b")},
	}
	require.NoError(t, bus.Publish(context.Background(), evs))

	assert.Equal(t, []string{"first", "a", "second", "first", "b", "second"}, seen)
}

func TestPublish_StopsOnFirstHandlerFailure(t *testing.T) {
	bus := newTestBus()
	boom := errors.New("boom")

	var calls []string
	bus.Subscribe(kindTest, func(context.Context, Event) error {
		calls = append(calls, "failing")
		return boom
	})
	bus.Subscribe(kindTest, func(context.Context, Event) error {
		calls = append(calls, "never")
		return nil
	})

	err := bus.Publish(context.Background(), []Event{
		testEvent{Meta: NewMeta("a")},
		testEvent{Meta: NewMeta("b")},
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"failing"}, calls, "remaining handlers and events must not run")
}

func TestPublish_NoHandlersIsFine(t *testing.T) {
	bus := newTestBus()
	assert.NoError(t, bus.Publish(context.Background(), []Event{testEvent{Meta: NewMeta("x")}}))
}

func TestSubscribe_AfterSealPanics(t *testing.T) {
	bus := newTestBus()
	bus.Seal()
	assert.Panics(t, func() {
		bus.Subscribe(kindTest, func(context.Context, Event) error { return nil })
	})
}
