package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/checkout"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// CheckoutHandler starts the payment handoff. Identity comes from the
// incoming Authorization header, same as the cart routes.
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates the checkout HTTP handler.
func NewCheckoutHandler(svc *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

type checkoutRequest struct {
	ShippingFee float64 `json:"shippingFee"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// Submit handles POST /api/checkout. The response carries the gateway URL
// the page must send the customer to.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, tok, err := bearerIdentity(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := session.ContextWithToken(r.Context(), tok)

	var req checkoutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "corpo da requisição inválido"})
			return
		}
	}
	if req.ShippingFee < 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "frete inválido"})
		return
	}

	url, err := h.service.Submit(ctx, userID, req.ShippingFee)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, checkoutResponse{URL: url})
}
