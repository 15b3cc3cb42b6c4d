// Package background keeps blocking work off the request path. Password
// hashing, token signing, media uploads and outbound HTTP all run here, either
// awaited (RunBlocking) or supervised fire-and-forget (Submit).
package background

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkers bounds concurrent blocking calls.
const DefaultWorkers = 100

// Executor schedules blocking functions on a bounded pool and tracks
// fire-and-forget tasks until they finish. Submissions beyond the bound queue
// on the semaphore; there is no ordering guarantee between submissions.
type Executor struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
	log zerolog.Logger
}

// New builds an executor with the given bound; workers <= 0 selects the
// default.
func New(workers int, log zerolog.Logger) *Executor {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Executor{
		sem: semaphore.NewWeighted(int64(workers)),
		log: log.With().Str("component", "background").Logger(),
	}
}

// RunBlocking executes fn on the pool and blocks the caller until it
// completes. When ctx is cancelled first, the caller unblocks with ctx.Err()
// while the task still runs to completion; its result is discarded.
// In-flight work is never cancelled.
func (e *Executor) RunBlocking(ctx context.Context, fn func() error) error {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer e.sem.Release(1)
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call runs fn on the executor and returns its value. It exists because
// methods cannot be generic.
func Call[T any](ctx context.Context, e *Executor, fn func() (T, error)) (T, error) {
	var out T
	err := e.RunBlocking(ctx, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}

// Submit schedules fn fire-and-forget. Errors never reach the caller: they are
// logged and dropped. The executor holds a handle to the task until it
// completes so Drain can wait for it.
func (e *Executor) Submit(name string, fn func(ctx context.Context) error) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				e.log.Error().Str("task", name).Interface("panic", r).Msg("background task panicked")
			}
		}()

		// Detached from the submitting request: the task outlives it.
		ctx := context.Background()
		if err := e.sem.Acquire(ctx, 1); err != nil {
			e.log.Error().Str("task", name).Err(err).Msg("background task not scheduled")
			return
		}
		defer e.sem.Release(1)

		if err := fn(ctx); err != nil {
			e.log.Error().Str("task", name).Err(err).Msg("background task failed")
		}
	}()
}

// Drain waits for all in-flight fire-and-forget tasks, or returns when ctx
// expires. Called once during shutdown.
func (e *Executor) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("background drain: %w", ctx.Err())
	}
}
