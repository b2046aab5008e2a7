package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httputil"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/cart"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// CartHandler re-exposes the synchronized cart to the storefront pages.
// Identity comes from the incoming Authorization header; the decoded token is
// forwarded on the outbound calls. Responses carry the `{items, total}` shape
// the pages render directly.
type CartHandler struct {
	sync   *cart.Synchronizer
	logger *slog.Logger
}

// NewCartHandler creates the cart HTTP handler.
func NewCartHandler(sync *cart.Synchronizer, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		sync:   sync,
		logger: logger,
	}
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// GetCart handles GET /api/cart. It refreshes from the remote so the page
// always renders server-side truth.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, tok, err := bearerIdentity(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := session.ContextWithToken(r.Context(), tok)

	snapshot, err := h.sync.Refresh(ctx, userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// AddItem handles POST /api/cart with body {productId, quantity}.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, tok, err := bearerIdentity(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := session.ContextWithToken(r.Context(), tok)

	req, ok := decodeCartItem(w, r)
	if !ok {
		return
	}

	snapshot, err := h.sync.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// UpdateItemQuantity handles PUT /api/cart with body {productId, quantity}.
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	userID, tok, err := bearerIdentity(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := session.ContextWithToken(r.Context(), tok)

	req, ok := decodeCartItem(w, r)
	if !ok {
		return
	}

	snapshot, err := h.sync.UpdateQuantity(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// RemoveItem handles DELETE /api/cart with body {productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, tok, err := bearerIdentity(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	ctx := session.ContextWithToken(r.Context(), tok)

	req, ok := decodeCartItem(w, r)
	if !ok {
		return
	}

	snapshot, err := h.sync.RemoveItem(ctx, userID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

// decodeCartItem reads the request body and rejects a missing productId. A
// false return means the error response has been written already.
func decodeCartItem(w http.ResponseWriter, r *http.Request) (cartItemRequest, bool) {
	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "corpo da requisição inválido"})
		return req, false
	}
	if req.ProductID == 0 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "productId é obrigatório"})
		return req, false
	}
	return req, true
}
