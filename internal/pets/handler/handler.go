// Package handler wires the pet endpoints to the pets service.
package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/pets"
	"petconnect/internal/platform/httputil"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
	"petconnect/pkg/requestcontext"
)

// maxPhotoBytes caps pet photo uploads.
const maxPhotoBytes = 5 << 20

// Handler exposes pet reporting. All endpoints require an access token.
type Handler struct {
	service *pets.Service
	log     zerolog.Logger
}

func New(service *pets.Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register mounts the pet endpoints on the authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/pets", h.HandleReport)
	r.Get("/pets/{id}", h.HandleGet)
	r.Put("/pets/{id}/photo", h.HandleAttachPhoto)
	r.Post("/pets/{id}/reunite", h.HandleReunite)
}

type reportRequest struct {
	OrganizationID string `json:"organization_id,omitempty"`
	Name           string `json:"name"`
	Species        string `json:"species"`
	Status         string `json:"status"`
	Description    string `json:"description"`
}

type petResponse struct {
	ID                string    `json:"id"`
	ReporterAccountID string    `json:"reporter_account_id"`
	OrganizationID    string    `json:"organization_id,omitempty"`
	Name              string    `json:"name"`
	Species           string    `json:"species"`
	Status            string    `json:"status"`
	Description       string    `json:"description,omitempty"`
	PhotoKey          string    `json:"photo_key,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func toResponse(p pets.Pet) petResponse {
	resp := petResponse{
		ID:                p.ID.String(),
		ReporterAccountID: p.ReporterAccountID.String(),
		Name:              p.Name,
		Species:           p.Species,
		Status:            string(p.Status),
		Description:       p.Description,
		PhotoKey:          p.PhotoKey,
		CreatedAt:         p.CreatedAt,
	}
	if p.OrganizationID != nil {
		resp.OrganizationID = p.OrganizationID.String()
	}
	return resp
}

// HandleReport handles POST /pets.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	req, err := httputil.Decode[reportRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	in := pets.ReportInput{
		Reporter:    actor,
		Name:        req.Name,
		Species:     req.Species,
		Status:      pets.Status(req.Status),
		Description: req.Description,
	}
	if req.OrganizationID != "" {
		orgID, err := domain.ParseOrganizationID(req.OrganizationID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		in.OrganizationID = &orgID
	}

	pet, err := h.service.Report(r.Context(), in)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(pet))
}

// HandleGet handles GET /pets/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParsePetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pet, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(pet))
}

// HandleAttachPhoto handles PUT /pets/{id}/photo. The body is the raw image;
// Content-Type names its format.
func (h *Handler) HandleAttachPhoto(w http.ResponseWriter, r *http.Request) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	id, err := domain.ParsePetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoBytes+1))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "could not read photo body"))
		return
	}
	if len(data) > maxPhotoBytes {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "photo is too large"))
		return
	}

	pet, err := h.service.AttachPhoto(r.Context(), actor, id, data, r.Header.Get("Content-Type"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(pet))
}

// HandleReunite handles POST /pets/{id}/reunite.
func (h *Handler) HandleReunite(w http.ResponseWriter, r *http.Request) {
	actor, ok := authenticated(w, r)
	if !ok {
		return
	}
	id, err := domain.ParsePetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	pet, err := h.service.Reunite(r.Context(), actor, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(pet))
}

func authenticated(w http.ResponseWriter, r *http.Request) (domain.AccountID, bool) {
	actor := requestcontext.AccountID(r.Context())
	if actor == (domain.AccountID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return domain.AccountID{}, false
	}
	return actor, true
}
