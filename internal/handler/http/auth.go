package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/validator"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/auth"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// AuthHandler handles login, logout, and session inspection.
type AuthHandler struct {
	service  *auth.Service
	sessions session.Reader
	logger   *slog.Logger
}

// NewAuthHandler creates the auth HTTP handler.
func NewAuthHandler(svc *auth.Service, sessions session.Reader, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  svc,
		sessions: sessions,
		logger:   logger,
	}
}

type loginResponse struct {
	User domain.User `json:"user"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "corpo da requisição inválido"})
		return
	}

	if err := validator.Validate(creds); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: valErr.Error()})
			return
		}
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: err.Error()})
		return
	}

	sess, err := h.service.Login(r.Context(), creds)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	// The token stays server side; pages only need the identity.
	httputil.WriteJSON(w, http.StatusOK, loginResponse{User: sess.User})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Current(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if sess == nil {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorBody{Error: "não autenticado"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, loginResponse{User: sess.User})
}
