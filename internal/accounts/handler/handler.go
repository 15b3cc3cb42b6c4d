// Package handler wires the auth endpoints to the accounts service.
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"petconnect/internal/accounts"
	"petconnect/internal/platform/httputil"
	"petconnect/internal/uow"
	dErrors "petconnect/pkg/domain-errors"
)

// Handler exposes the auth flows over HTTP.
type Handler struct {
	service *accounts.Service
	runner  *uow.Runner
	log     zerolog.Logger
}

func New(service *accounts.Service, runner *uow.Runner, log zerolog.Logger) *Handler {
	return &Handler{service: service, runner: runner, log: log}
}

// Register mounts the auth endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.Post("/auth/verify_account", h.HandleVerify)
	r.Post("/auth/verify_account/resend", h.HandleResendVerification)
	r.Post("/auth/reset_password/request", h.HandleRequestPasswordReset)
	r.Post("/auth/reset_password", h.HandleResetPassword)
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleLogin handles POST /auth/login. The body is form-encoded, matching
// what OAuth-style password clients send.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid form body"))
		return
	}
	// OAuth password grant names the identity field "username"; for us it
	// carries the account email.
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if strings.TrimSpace(username) == "" || password == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "username and password are required"))
		return
	}

	accessToken, err := h.service.Login(r.Context(), username, password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken, TokenType: "bearer"})
}

type verifyRequest struct {
	Token string `json:"verification_token"`
}

// HandleVerify handles POST /auth/verify_account.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[verifyRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.runner.Run(r.Context(), func(ctx context.Context) error {
		_, err := h.service.Verify(ctx, req.Token)
		return err
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type emailRequest struct {
	Email string `json:"email"`
}

// HandleResendVerification handles POST /auth/verify_account/resend.
func (h *Handler) HandleResendVerification(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[emailRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.runner.Run(r.Context(), func(ctx context.Context) error {
		return h.service.ResendVerification(ctx, req.Email)
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRequestPasswordReset handles POST /auth/reset_password/request.
func (h *Handler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[emailRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.runner.Run(r.Context(), func(ctx context.Context) error {
		return h.service.RequestPasswordReset(ctx, req.Email)
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type resetPasswordRequest struct {
	Token    string `json:"reset_password_token"`
	Password string `json:"new_password"`
}

// HandleResetPassword handles POST /auth/reset_password.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[resetPasswordRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.runner.Run(r.Context(), func(ctx context.Context) error {
		return h.service.ResetPassword(ctx, req.Token, req.Password)
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
