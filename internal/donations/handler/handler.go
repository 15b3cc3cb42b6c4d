// Package handler wires the campaign and donation endpoints to the donations
// service.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/donations"
	"petconnect/internal/platform/httputil"
	"petconnect/pkg/domain"
	dErrors "petconnect/pkg/domain-errors"
	"petconnect/pkg/requestcontext"
)

// Handler exposes campaigns and donations. Creating campaigns requires an
// access token; donating and the QR code are public so campaign links can be
// shared.
type Handler struct {
	service *donations.Service
	log     zerolog.Logger
}

func New(service *donations.Service, log zerolog.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Register mounts the public endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/campaigns/{id}", h.HandleGet)
	r.Get("/campaigns/{id}/qr", h.HandleQR)
	r.Post("/campaigns/{id}/donations", h.HandleDonate)
}

// RegisterAuthenticated mounts the endpoints that require an access token.
func (h *Handler) RegisterAuthenticated(r chi.Router) {
	r.Post("/campaigns", h.HandleCreate)
}

type createRequest struct {
	OrganizationID string `json:"organization_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	GoalCents      int64  `json:"goal_cents"`
}

type campaignResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	GoalCents      int64     `json:"goal_cents"`
	RaisedCents    int64     `json:"raised_cents"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toCampaignResponse(c donations.Campaign, raised int64) campaignResponse {
	return campaignResponse{
		ID:             c.ID.String(),
		OrganizationID: c.OrganizationID.String(),
		Title:          c.Title,
		Description:    c.Description,
		GoalCents:      c.GoalCents,
		RaisedCents:    raised,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
	}
}

// HandleCreate handles POST /campaigns.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor := requestcontext.AccountID(r.Context())
	if actor == (domain.AccountID{}) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}
	req, err := httputil.Decode[createRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	orgID, err := domain.ParseOrganizationID(req.OrganizationID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	campaign, err := h.service.CreateCampaign(r.Context(), actor, orgID, req.Title, req.Description, req.GoalCents)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toCampaignResponse(campaign, campaign.RaisedCents))
}

// HandleGet handles GET /campaigns/{id}. The raised total prefers the cache.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	campaign, err := h.service.GetCampaign(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	raised, err := h.service.RaisedTotal(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toCampaignResponse(campaign, raised))
}

type donateRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

type donationResponse struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaign_id"`
	AmountCents int64  `json:"amount_cents"`
	PaymentRef  string `json:"payment_ref"`
	Status      string `json:"status"`
}

// HandleDonate handles POST /campaigns/{id}/donations. An access token is
// optional; without one the donation is anonymous.
func (h *Handler) HandleDonate(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[donateRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var donor *domain.AccountID
	if actor := requestcontext.AccountID(r.Context()); actor != (domain.AccountID{}) {
		donor = &actor
	}

	donation, err := h.service.Donate(r.Context(), donor, id, req.AmountCents)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, donationResponse{
		ID:          donation.ID.String(),
		CampaignID:  donation.CampaignID.String(),
		AmountCents: donation.AmountCents,
		PaymentRef:  donation.PaymentRef,
		Status:      string(donation.Status),
	})
}

// HandleQR handles GET /campaigns/{id}/qr.
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCampaignID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	img, err := h.service.CampaignQR(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
