package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/shipping"
)

type fakeShippingAPI struct {
	address domain.Address
	quotes  []domain.ShippingQuote
	err     error
}

func (f *fakeShippingAPI) LookupAddress(ctx context.Context, cep string) (domain.Address, error) {
	return f.address, f.err
}

func (f *fakeShippingAPI) CalculateShipping(ctx context.Context, req domain.ShippingRequest) ([]domain.ShippingQuote, error) {
	return f.quotes, f.err
}

func newShippingRouter(api *fakeShippingAPI) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := shipping.NewResolver(api, "01310100", logger)
	h := NewShippingHandler(resolver, logger)

	r := chi.NewRouter()
	r.Get("/api/shipping/address/{cep}", h.LookupAddress)
	r.Get("/api/shipping/quote/{cep}", h.Quote)
	return r
}

func TestLookupAddress_OK(t *testing.T) {
	api := &fakeShippingAPI{address: domain.Address{City: "Curitiba", State: "PR"}}
	router := newShippingRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/api/shipping/address/80010000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Curitiba")
}

func TestLookupAddress_InvalidCEP(t *testing.T) {
	router := newShippingRouter(&fakeShippingAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/shipping/address/1234", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "CEP inválido")
}

func TestQuote_IncludesCheapest(t *testing.T) {
	api := &fakeShippingAPI{quotes: []domain.ShippingQuote{
		{CarrierName: "Correios", Price: 25.9},
		{CarrierName: "Jadlog", Price: 19.5},
	}}
	router := newShippingRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/api/shipping/quote/80010000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cheapest"`)
	assert.Contains(t, rec.Body.String(), "Jadlog")
}

func TestQuote_AllCarriersFailing(t *testing.T) {
	api := &fakeShippingAPI{quotes: []domain.ShippingQuote{
		{CarrierName: "Azul", Error: "down"},
	}}
	router := newShippingRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/api/shipping/quote/80010000", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// The quote list still renders; no cheapest entry is offered.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"cheapest"`)
}
