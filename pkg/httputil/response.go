package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/logger"
)

// ErrorBody is the JSON error shape served by the local API surface. It
// mirrors the `{ "error": "..." }` contract the storefront pages consume.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, headers are already sent so nothing can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a `{ "error": message }` response. The status is taken
// from the error's AppError mapping, which preserves upstream status codes on
// proxied remote failures. Internal errors are logged with the request-scoped
// logger when available.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		message = "an internal error occurred"
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorBody{Error: message})
}
