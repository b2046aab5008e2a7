package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/shipping"
)

// ShippingHandler serves address lookup and freight quotes.
type ShippingHandler struct {
	resolver *shipping.Resolver
	logger   *slog.Logger
}

// NewShippingHandler creates the shipping HTTP handler.
func NewShippingHandler(resolver *shipping.Resolver, logger *slog.Logger) *ShippingHandler {
	return &ShippingHandler{resolver: resolver, logger: logger}
}

type quoteResponse struct {
	Quotes   []domain.ShippingQuote `json:"quotes"`
	Cheapest *domain.ShippingQuote  `json:"cheapest,omitempty"`
}

// LookupAddress handles GET /api/shipping/address/{cep}.
func (h *ShippingHandler) LookupAddress(w http.ResponseWriter, r *http.Request) {
	cep := chi.URLParam(r, "cep")

	address, err := h.resolver.LookupAddress(r.Context(), cep)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, address)
}

// Quote handles GET /api/shipping/quote/{cep}. The full carrier list rides
// along so the page can offer choices; cheapest is what the checkout
// preselects.
func (h *ShippingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	cep := chi.URLParam(r, "cep")

	quotes, err := h.resolver.Quote(r.Context(), cep)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := quoteResponse{Quotes: quotes}
	if cheapest, err := shipping.SelectCheapest(quotes); err == nil {
		resp.Cheapest = &cheapest
	} else if !errors.Is(err, apperrors.ErrNoCarrierAvailable) {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
