package email

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petconnect/internal/platform/background"
)

// slowBackend blocks deliveries until released, and records them.
type slowBackend struct {
	mu      sync.Mutex
	sent    []Data
	release chan struct{}
	err     error
}

func newSlowBackend() *slowBackend {
	return &slowBackend{release: make(chan struct{})}
}

func (b *slowBackend) SenderAddress() string { return "no-reply@petconnect.app" }

func (b *slowBackend) SendBlocking(_ context.Context, mail Data) error {
	<-b.release
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, mail)
	return b.err
}

func (b *slowBackend) delivered() []Data {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Data, len(b.sent))
	copy(out, b.sent)
	return out
}

func TestSchedule_ReturnsWithoutWaitingForBackend(t *testing.T) {
	backend := newSlowBackend()
	exec := background.New(4, zerolog.Nop())
	s := NewScheduler(backend, exec, zerolog.Nop(), nil)

	start := time.Now()
	s.Schedule("a@x.com", "Hello", "body")
	elapsed := time.Since(start)

	// The backend is stuck; scheduling must still be immediate.
	assert.Less(t, elapsed, 100*time.Millisecond)
	assert.Empty(t, backend.delivered())

	close(backend.release)
	require.NoError(t, exec.Drain(context.Background()))

	delivered := backend.delivered()
	require.Len(t, delivered, 1)
	assert.Equal(t, "a@x.com", delivered[0].Recipient)
	assert.Equal(t, "no-reply@petconnect.app", delivered[0].Sender)
}

func TestSchedule_CachesForAssertions(t *testing.T) {
	backend := newSlowBackend()
	close(backend.release)
	exec := background.New(4, zerolog.Nop())
	s := NewScheduler(backend, exec, zerolog.Nop(), nil)

	s.Schedule("a@x.com", "One", "1")
	s.Schedule("b@x.com", "Two", "2")

	recent := s.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "One", recent[0].Subject)
	assert.Equal(t, "Two", recent[1].Subject)
	require.NoError(t, exec.Drain(context.Background()))
}

func TestSchedule_BackendFailureIsSwallowed(t *testing.T) {
	backend := newSlowBackend()
	backend.err = errors.New("provider down")
	close(backend.release)
	exec := background.New(4, zerolog.Nop())
	s := NewScheduler(backend, exec, zerolog.Nop(), nil)

	// No error channel exists at all; the contract is fire-and-forget.
	s.Schedule("a@x.com", "Hello", "body")
	require.NoError(t, exec.Drain(context.Background()))
	assert.Len(t, s.Recent(), 1)
}

func TestSendGridBackend_PostsPayload(t *testing.T) {
	var gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = buf
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	b := NewSendGridBackend("sg-key", srv.URL, "no-reply@petconnect.app")
	err := b.SendBlocking(context.Background(), Data{
		Sender:    b.SenderAddress(),
		Recipient: "a@x.com",
		Subject:   "Hi",
		Body:      "<p>Hi</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer sg-key", gotAuth)
	assert.Contains(t, string(gotBody), "a@x.com")
}

func TestSendGridBackend_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	b := NewSendGridBackend("bad-key", srv.URL, "no-reply@petconnect.app")
	err := b.SendBlocking(context.Background(), Data{Recipient: "a@x.com"})
	assert.Error(t, err)
}
