package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// PrefsHandler serves session-scoped display preferences.
type PrefsHandler struct {
	prefs  session.Preferences
	logger *slog.Logger
}

// NewPrefsHandler creates the preferences HTTP handler.
func NewPrefsHandler(prefs session.Preferences, logger *slog.Logger) *PrefsHandler {
	return &PrefsHandler{prefs: prefs, logger: logger}
}

type accentColorBody struct {
	Color string `json:"color"`
}

// GetAccentColor handles GET /api/preferences/accent-color.
func (h *PrefsHandler) GetAccentColor(w http.ResponseWriter, r *http.Request) {
	color, err := h.prefs.AccentColor(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, accentColorBody{Color: color})
}

// SetAccentColor handles PUT /api/preferences/accent-color.
func (h *PrefsHandler) SetAccentColor(w http.ResponseWriter, r *http.Request) {
	var body accentColorBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "corpo da requisição inválido"})
		return
	}
	if body.Color == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "color é obrigatório"})
		return
	}

	if err := h.prefs.SetAccentColor(r.Context(), body.Color); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
