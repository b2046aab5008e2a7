package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

func TestLookupAddress(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/01310100/json", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01310-100","uf":"SP","localidade":"São Paulo","bairro":"Bela Vista","logradouro":"Avenida Paulista"}`))
	}))

	addr, err := c.LookupAddress(context.Background(), "01310100")

	require.NoError(t, err)
	assert.Equal(t, "SP", addr.State)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "Avenida Paulista", addr.Street)
}

func TestLookupAddress_UnknownCEP(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// viacep answers 200 with an erro flag for nonexistent CEPs.
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	}))

	_, err := c.LookupAddress(context.Background(), "99999999")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCalculateShipping(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Shipping/calculate", r.URL.Path)

		var req domain.ShippingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "01310100", req.FromCEP)
		assert.Equal(t, "80010000", req.ToCEP)
		assert.InDelta(t, 0.3, req.Package.Weight, 1e-9)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"company":"Correios","name":"SEDEX","price":25.9,"delivery_time":2},
			{"company":"Jadlog","name":".Package","price":19.5,"delivery_time":4},
			{"company":"Azul","name":"Amanhã","error":"range not served"}
		]`))
	}))

	quotes, err := c.CalculateShipping(context.Background(), domain.ShippingRequest{
		FromCEP: "01310100",
		ToCEP:   "80010000",
		Package: domain.DefaultPackage,
	})

	require.NoError(t, err)
	require.Len(t, quotes, 3)
	assert.True(t, quotes[0].Usable())
	assert.False(t, quotes[2].Usable())
}
