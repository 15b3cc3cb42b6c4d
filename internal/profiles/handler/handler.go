// Package handler wires the profile endpoints to the profiles service.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/platform/httputil"
	"petconnect/internal/profiles"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
	"petconnect/pkg/requestcontext"
)

// Handler exposes registration and profile reads.
type Handler struct {
	service *profiles.Service
	log     zerolog.Logger
}

func New(service *profiles.Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register mounts the public registration endpoint.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profiles", h.HandleRegister)
}

// RegisterAuthenticated mounts the endpoints that require an access token.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Get("/profiles/me", h.HandleMe)
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfileResponse(p profiles.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID.String(),
		AccountID: p.AccountID.String(),
		Name:      p.Name,
		Phone:     p.Phone,
		CreatedAt: p.CreatedAt,
	}
}

// HandleRegister handles POST /profiles.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[registerRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	profile, err := h.service.Register(r.Context(), profiles.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toProfileResponse(profile))
}

// HandleMe handles GET /profiles/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	accountID := requestcontext.AccountID(r.Context())
	if accountID == (domain.AccountID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	profile, err := h.service.GetByAccount(r.Context(), accountID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toProfileResponse(profile))
}
