package email

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"petconnect/internal/platform/background"
	"petconnect/internal/platform/metrics"
)

// Backend performs the actual blocking delivery.
type Backend interface {
	SendBlocking(ctx context.Context, mail Data) error
	SenderAddress() string
}

// Scheduler is the non-blocking mail gateway. It keeps a volatile cache of
// recently scheduled mails for assertions in tests; the cache is not a retry
// queue and has no persistence guarantees.
type Scheduler struct {
	backend Backend
	exec    *background.Executor
	log     zerolog.Logger
	metrics *metrics.Metrics

	mu     sync.Mutex
	recent []Data
}

func NewScheduler(backend Backend, exec *background.Executor, log zerolog.Logger, m *metrics.Metrics) *Scheduler {
	return &Scheduler{
		backend: backend,
		exec:    exec,
		log:     log.With().Str("component", "email").Logger(),
		metrics: m,
	}
}

// Schedule enqueues a mail for delivery and returns immediately. Delivery may
// complete after the HTTP response that triggered it has been written.
func (s *Scheduler) Schedule(recipient, subject, body string) {
	mail := Data{
		Sender:    s.backend.SenderAddress(),
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
	}

	s.mu.Lock()
	s.recent = append(s.recent, mail)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.EmailsScheduled.Inc()
	}

	s.exec.Submit("email-send", func(ctx context.Context) error {
		if err := s.backend.SendBlocking(ctx, mail); err != nil {
			if s.metrics != nil {
				s.metrics.EmailsFailed.Inc()
			}
			s.log.Error().
				Str("recipient", mail.Recipient).
				Str("subject", mail.Subject).
				Err(err).
				Msg("email delivery failed")
			return nil // swallowed: fire-and-forget by contract
		}
		if s.metrics != nil {
			s.metrics.EmailsSent.Inc()
		}
		return nil
	})
}

// Recent returns a copy of the scheduled-mail cache.
func (s *Scheduler) Recent() []Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Data, len(s.recent))
	copy(out, s.recent)
	return out
}
