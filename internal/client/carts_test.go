package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httpclient"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *fakeStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := &fakeStore{session: &domain.Session{User: domain.User{ID: "42"}, Token: "tok-123"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hc := httpclient.New(httpclient.Config{Timeout: 5 * time.Second, MaxRetries: 0})
	c := New(hc, hc, hc, Config{
		APIBaseURL:  srv.URL,
		CheckoutURL: srv.URL + "/Checkout",
		CEPBaseURL:  srv.URL + "/ws",
	}, store, logger)
	return c, store
}

func TestGetCart(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Carts/42", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"productId":1,"productName":"Tênis","price":199.9,"quantity":2}],"total":399.8}`))
	}))

	snapshot, err := c.GetCart(context.Background(), 42)

	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, int64(1), snapshot.Items[0].ProductID)
	assert.Equal(t, "Tênis", snapshot.Items[0].ProductName)
	assert.InDelta(t, 399.8, snapshot.Total, 1e-9)
}

func TestAddCartItem(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Carts/42/add", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"productId":7,"quantity":3}`, string(body))

		w.WriteHeader(http.StatusOK)
	}))

	err := c.AddCartItem(context.Background(), 42, 7, 3)
	require.NoError(t, err)
}

func TestRemoveCartItem(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Carts/42/remove/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	err := c.RemoveCartItem(context.Background(), 42, 7)
	require.NoError(t, err)
}

func TestUpdateCartItem_RawIntegerBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Carts/42/update/7", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "5", string(body))

		w.WriteHeader(http.StatusOK)
	}))

	err := c.UpdateCartItem(context.Background(), 42, 7, 5)
	require.NoError(t, err)
}

func TestGetCart_NotAuthenticated_NoNetworkCall(t *testing.T) {
	called := false
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	store.session = nil

	_, err := c.GetCart(context.Background(), 42)

	require.Error(t, err)
	assert.False(t, called)
}

func TestGetCart_RemoteError_PreservesStatusAndMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"carrinho não encontrado"}`))
	}))

	_, err := c.GetCart(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "carrinho não encontrado")
}
