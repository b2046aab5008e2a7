package http

import (
	"net/http"
	"strings"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/nav"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/token"
)

// pageHeader carries the path the storefront page was on when it issued the
// request. The navigation tracker uses it to decide expiry redirects.
const pageHeader = "X-Current-Page"

// TrackPage records the requesting page's location before the request is
// handled.
func TrackPage(tracker *nav.Tracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker.SetCurrent(r.Header.Get(pageHeader))
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":"Content-Type must be application/json"}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// CORS adds Cross-Origin Resource Sharing headers so storefront pages can
// call this API from the browser.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Correlation-ID, X-Current-Page")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerIdentity reads the caller's bearer token from the Authorization
// header and resolves the numeric user ID from its claims. The header is the
// only identity source for the cart and checkout routes; the stored session
// is never consulted here.
func bearerIdentity(r *http.Request) (int64, string, error) {
	raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || raw == "" {
		return 0, "", apperrors.NotAuthenticated("faça login para continuar")
	}

	claims, err := token.Decode(raw)
	if err != nil || claims == nil {
		return 0, "", apperrors.NotAuthenticated("sessão inválida")
	}
	return claims.UserID, raw, nil
}
