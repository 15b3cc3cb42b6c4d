// Package app is the composition root. Build wires the whole service in a
// fixed order (platform, stores, services, event handlers, HTTP) with every
// dependency held in a typed field, so a missing wire is a compile error
// rather than a runtime lookup failure. After Build returns, the event bus is
// sealed and no further subscriptions are possible.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"petconnect/internal/accounts"
	accountshandler "petconnect/internal/accounts/handler"
	"petconnect/internal/adoptions"
	adoptionshandler "petconnect/internal/adoptions/handler"
	"petconnect/internal/donations"
	donationshandler "petconnect/internal/donations/handler"
	"petconnect/internal/email"
	"petconnect/internal/events"
	"petconnect/internal/notify"
	"petconnect/internal/organizations"
	organizationshandler "petconnect/internal/organizations/handler"
	"petconnect/internal/pets"
	petshandler "petconnect/internal/pets/handler"
	"petconnect/internal/platform/background"
	"petconnect/internal/platform/config"
	"petconnect/internal/platform/database"
	"petconnect/internal/platform/hash"
	"petconnect/internal/platform/metrics"
	platformredis "petconnect/internal/platform/redis"
	"petconnect/internal/profiles"
	profileshandler "petconnect/internal/profiles/handler"
	"petconnect/internal/token"
	httptransport "petconnect/internal/transport/http"
	"petconnect/internal/uow"
)

// App holds the fully wired service.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Executor *background.Executor
	DB       *sql.DB
	Redis    *platformredis.Client
	Bus      *events.Bus
	Runner   *uow.Runner
	Tokens   *token.Service
	Emails   *email.Scheduler

	Accounts      *accounts.Service
	Profiles      *profiles.Service
	Organizations *organizations.Service
	Pets          *pets.Service
	Adoptions     *adoptions.Service
	Donations     *donations.Service

	Router http.Handler
}

// Build assembles the application.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	// Phase 1: platform.
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector())
	a.Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)
	a.Executor = background.New(background.DefaultWorkers, log)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("build database: %w", err)
	}
	a.DB = db

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("build redis: %w", err)
	}
	a.Redis = redisClient

	// Phase 2: stores and the session factory. With a database every store is
	// backed by Postgres and the unit of work by transactions; without one the
	// memory pairs and the snapshotting factory take over.
	var (
		factory       uow.SessionFactory
		accountStore  accounts.Store
		profileStore  profiles.Store
		orgStore      organizations.Store
		petStore      pets.Store
		adoptionStore adoptions.Store
		donationStore donations.Store
	)
	if db != nil {
		factory = uow.NewSQLSessionFactory(db)
		accountStore = accounts.NewPostgresStore(db)
		profileStore = profiles.NewPostgresStore(db)
		orgStore = organizations.NewPostgresStore(db)
		petStore = pets.NewPostgresStore(db)
		adoptionStore = adoptions.NewPostgresStore(db)
		donationStore = donations.NewPostgresStore(db)
	} else {
		accountMem := accounts.NewMemoryStore()
		profileMem := profiles.NewMemoryStore()
		orgMem := organizations.NewMemoryStore()
		petMem := pets.NewMemoryStore()
		adoptionMem := adoptions.NewMemoryStore()
		donationMem := donations.NewMemoryStore()
		factory = uow.NewMemorySessionFactory(accountMem, profileMem, orgMem, petMem, adoptionMem, donationMem)
		accountStore = accountMem
		profileStore = profileMem
		orgStore = orgMem
		petStore = petMem
		adoptionStore = adoptionMem
		donationStore = donationMem
	}

	// Phase 3: core services.
	a.Bus = events.NewBus(log, a.Metrics)
	a.Runner = uow.NewRunner(factory, a.Bus, log, a.Metrics)

	hasher := hash.New(0, a.Executor)
	tokens, err := token.New(cfg.Token.Secret, cfg.Token.Algorithm, cfg.Token.AccessTTL, a.Executor)
	if err != nil {
		return nil, fmt.Errorf("build token service: %w", err)
	}
	a.Tokens = tokens

	var backend email.Backend
	switch cfg.Email.Backend {
	case "sendgrid":
		backend = email.NewSendGridBackend(cfg.Email.SendGridKey, cfg.Email.SendGridURL, cfg.Email.Sender)
	default:
		backend = email.NewLogBackend(cfg.Email.Sender, log)
	}
	a.Emails = email.NewScheduler(backend, a.Executor, log, a.Metrics)

	// Phase 4: domain services.
	a.Accounts = accounts.NewService(accountStore, hasher, tokens, log, a.Metrics)
	a.Profiles = profiles.NewService(profileStore, a.Accounts, a.Runner, log)
	a.Organizations = organizations.NewService(orgStore, a.Runner, log)
	a.Pets = pets.NewService(petStore, a.Organizations, pets.NewMemoryMediaStore(), a.Executor, a.Runner, log)

	var totalsCache donations.TotalsCache
	if redisClient != nil {
		totalsCache = donations.NewRedisTotalsCache(redisClient)
	}
	a.Adoptions = adoptions.NewService(adoptionStore, a.Pets, a.Runner, log)
	a.Donations = donations.NewService(donationStore, a.Organizations,
		donations.NewSandboxGateway(log), donations.NewQRCode(0), totalsCache,
		a.Executor, a.Runner, cfg.Email.FrontendBase, log, a.Metrics)

	// Phase 5: event handlers, then seal. A Subscribe after this panics.
	notify.NewMailer(a.Accounts, tokens, a.Emails, cfg.Email.FrontendBase, log).Wire(a.Bus)
	a.Bus.Seal()

	// Phase 6: HTTP.
	a.Router = httptransport.NewRouter(httptransport.Handlers{
		Accounts:      accountshandler.New(a.Accounts, a.Runner, log),
		Profiles:      profileshandler.New(a.Profiles, log),
		Organizations: organizationshandler.New(a.Organizations, log),
		Pets:          petshandler.New(a.Pets, log),
		Adoptions:     adoptionshandler.New(a.Adoptions, log),
		Donations:     donationshandler.New(a.Donations, log),
	}, tokens, a.Registry, log)

	return a, nil
}

// Shutdown drains background work and releases connections.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Executor.Drain(ctx)
	if a.Redis != nil {
		if cerr := a.Redis.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if a.DB != nil {
		if cerr := a.DB.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
