package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. A single instance
// is built at startup and shared by injection.
type Metrics struct {
	UoWCommits       prometheus.Counter
	UoWRollbacks     prometheus.Counter
	EventsDispatched prometheus.Counter
	HandlerFailures  prometheus.Counter
	EmailsScheduled  prometheus.Counter
	EmailsSent       prometheus.Counter
	EmailsFailed     prometheus.Counter
	AccountsCreated  prometheus.Counter
	AccountsVerified prometheus.Counter
	DonationsDone    prometheus.Counter
}

// New creates and registers all Prometheus metrics on reg. Passing a fresh
// registry keeps test instances from colliding on the default one.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UoWCommits: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_uow_commits_total",
			Help: "Total number of committed units of work",
		}),
		UoWRollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_uow_rollbacks_total",
			Help: "Total number of rolled back units of work",
		}),
		EventsDispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_events_dispatched_total",
			Help: "Total number of domain events handed to handlers",
		}),
		HandlerFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_event_handler_failures_total",
			Help: "Total number of post-commit event handler failures",
		}),
		EmailsScheduled: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_emails_scheduled_total",
			Help: "Total number of emails accepted for delivery",
		}),
		EmailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_emails_sent_total",
			Help: "Total number of emails delivered by the backend",
		}),
		EmailsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_emails_failed_total",
			Help: "Total number of email deliveries that failed",
		}),
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsVerified: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_accounts_verified_total",
			Help: "Total number of accounts verified",
		}),
		DonationsDone: factory.NewCounter(prometheus.CounterOpts{
			Name: "petconnect_donations_completed_total",
			Help: "Total number of completed donations",
		}),
	}
}
