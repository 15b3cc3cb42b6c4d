// Package handler wires the adoption endpoints to the adoptions service.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/adoptions"
	"petconnect/internal/platform/httputil"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
	"petconnect/pkg/requestcontext"
)

// Handler exposes the adoption flows. All endpoints require an access token.
type Handler struct {
	service *adoptions.Service
	log     zerolog.Logger
}

func New(service *adoptions.Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register mounts the adoption endpoints on the authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/adoptions", h.HandleApply)
	r.Post("/adoptions/{id}/approve", h.HandleApprove)
	r.Post("/adoptions/{id}/reject", h.HandleReject)
}

type applyRequest struct {
	PetID   string `json:"pet_id"`
	Message string `json:"message"`
}

type applicationResponse struct {
	ID                 string    `json:"id"`
	PetID              string    `json:"pet_id"`
	ApplicantAccountID string    `json:"applicant_account_id"`
	Status             string    `json:"status"`
	Message            string    `json:"message,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

func toResponse(a adoptions.Application) applicationResponse {
	return applicationResponse{
		ID:                 a.ID.String(),
		PetID:              a.PetID.String(),
		ApplicantAccountID: a.ApplicantAccountID.String(),
		Status:             string(a.Status),
		Message:            a.Message,
		CreatedAt:          a.CreatedAt,
	}
}

// HandleApply handles POST /adoptions.
func (h *Handler) HandleApply(w http.ResponseWriter, r *http.Request) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	req, err := httputil.Decode[applyRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	petID, err := domain.ParsePetID(req.PetID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := h.service.Apply(r.Context(), actor, petID, req.Message)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(app))
}

// HandleApprove handles POST /adoptions/{id}/approve.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Approve)
}

// HandleReject handles POST /adoptions/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actor domain.AccountID, id domain.ApplicationID) (adoptions.Application, error)) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	id, err := domain.ParseApplicationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	app, err := op(r.Context(), actor, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(app))
}

func authenticated(w http.ResponseWriter, r *http.Request) (domain.AccountID, bool) {
	actor := requestcontext.AccountID(r.Context())
	if actor == (domain.AccountID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.AccountID{}, false
	}
	return actor, true
}
