// Package handler wires the organization endpoints to the organizations
// service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/organizations"
	"petconnect/internal/platform/httputil"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
	"petconnect/pkg/requestcontext"
)

// Handler exposes organization management. All endpoints require an access
// token.
type Handler struct {
	service *organizations.Service
	log     zerolog.Logger
}

func New(service *organizations.Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register mounts the organization endpoints on the authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/organizations", h.HandleCreate)
	r.Get("/organizations/{id}", h.HandleGet)
	r.Post("/organizations/{id}/deactivate", h.HandleDeactivate)
	r.Post("/organizations/{id}/reactivate", h.HandleReactivate)
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type organizationResponse struct {
	ID             string    `json:"id"`
	OwnerAccountID string    `json:"owner_account_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func toResponse(o organizations.Organization) organizationResponse {
	return organizationResponse{
		ID:             o.ID.String(),
		OwnerAccountID: o.OwnerAccountID.String(),
		Name:           o.Name,
		Description:    o.Description,
		Status:         string(o.Status),
		CreatedAt:      o.CreatedAt,
	}
}

// HandleCreate handles POST /organizations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	req, err := httputil.Decode[createRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Create(r.Context(), actor, req.Name, req.Description)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(org))
}

// HandleGet handles GET /organizations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(org))
}

// HandleDeactivate handles POST /organizations/{id}/deactivate.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Deactivate)
}

// HandleReactivate handles POST /organizations/{id}/reactivate.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Reactivate)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor domain.AccountID, id domain.OrganizationID) (organizations.Organization, error)) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	id, err := domain.ParseOrganizationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	org, err := op(r.Context(), actor, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(org))
}

func authenticated(w http.ResponseWriter, r *http.Request) (domain.AccountID, bool) {
	actor := requestcontext.AccountID(r.Context())
	if actor == (domain.AccountID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.AccountID{}, false
	}
	return actor, true
}
