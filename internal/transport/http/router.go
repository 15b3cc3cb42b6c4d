// Package httptransport assembles the HTTP API: middleware chain, public and
// authenticated route groups, health and metrics endpoints.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	accountshandler "petconnect/internal/accounts/handler"
	adoptionshandler "petconnect/internal/adoptions/handler"
	donationshandler "petconnect/internal/donations/handler"
	organizationshandler "petconnect/internal/organizations/handler"
	petshandler "petconnect/internal/pets/handler"
	profileshandler "petconnect/internal/profiles/handler"
	"petconnect/internal/token"
)

// Handlers collects the per-context HTTP handlers mounted by the router.
type Handlers struct {
	Accounts      *accountshandler.Handler
	Profiles      *profileshandler.Handler
	Organizations *organizationshandler.Handler
	Pets          *petshandler.Handler
	Adoptions     *adoptionshandler.Handler
	Donations     *donationshandler.Handler
}

// NewRouter builds the full API router.
func NewRouter(h Handlers, tokens *token.Service, registry *prometheus.Registry, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(log))
	r.Use(recoverer(log))
	r.Use(authenticate(tokens))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Public surface: auth flows, registration, shared campaign links.
	h.Accounts.Register(r)
	h.Profiles.Register(r)
	h.Donations.Register(r)

	// Authenticated surface. The handlers enforce the account requirement;
	// grouping keeps the split visible in one place.
	r.Group(func(r chi.Router) {
		h.Profiles.RegisterAuthenticated(r)
		h.Organizations.Register(r)
		h.Pets.Register(r)
		h.Adoptions.Register(r)
		h.Donations.RegisterAuthenticated(r)
	})

	return r
}
