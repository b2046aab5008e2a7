package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/health"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/middleware"
)

// RouterConfig carries everything the router needs besides the handlers.
type RouterConfig struct {
	AppVersion     string
	RequestTimeout time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

// Handlers groups the storefront's HTTP handlers.
type Handlers struct {
	Auth     *AuthHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Shipping *ShippingHandler
	Prefs    *PrefsHandler
	Health   *health.Handler
	Page     func(http.Handler) http.Handler
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(h Handlers, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(CORS)
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, logger))

	// Health check endpoints
	r.Get("/health/live", h.Health.LivenessHandler())
	r.Get("/health/ready", h.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if h.Page != nil {
			r.Use(h.Page)
		}

		r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
			httputil.WriteJSON(w, http.StatusOK, map[string]string{"version": cfg.AppVersion})
		})

		r.Post("/login", h.Auth.Login)
		r.Post("/logout", h.Auth.Logout)
		r.Get("/session", h.Auth.Session)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/", h.Cart.AddItem)
			r.Put("/", h.Cart.UpdateItemQuantity)
			r.Delete("/", h.Cart.RemoveItem)
		})

		r.Post("/checkout", h.Checkout.Submit)

		r.Route("/shipping", func(r chi.Router) {
			r.Get("/address/{cep}", h.Shipping.LookupAddress)
			r.Get("/quote/{cep}", h.Shipping.Quote)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/accent-color", h.Prefs.GetAccentColor)
			r.Put("/accent-color", h.Prefs.SetAccentColor)
		})
	})

	return r
}
