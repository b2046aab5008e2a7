package http

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/cart"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// --- Fakes ---

type fakeCartAPI struct {
	mu       sync.Mutex
	snapshot domain.CartSnapshot
	err      error
	userIDs  []int64
	tokens   []string
}

func (f *fakeCartAPI) record(ctx context.Context, userID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userIDs = append(f.userIDs, userID)
	if tok, ok := session.TokenFromContext(ctx); ok {
		f.tokens = append(f.tokens, tok)
	}
}

func (f *fakeCartAPI) GetCart(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	f.record(ctx, userID)
	return f.snapshot, f.err
}

func (f *fakeCartAPI) AddCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	f.record(ctx, userID)
	return f.err
}

func (f *fakeCartAPI) RemoveCartItem(ctx context.Context, userID, productID int64) error {
	f.record(ctx, userID)
	return f.err
}

func (f *fakeCartAPI) UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error {
	f.record(ctx, userID)
	return f.err
}

func (f *fakeCartAPI) seenUserIDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int64, len(f.userIDs))
	copy(out, f.userIDs)
	return out
}

func (f *fakeCartAPI) seenTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.tokens))
	copy(out, f.tokens)
	return out
}

type noopSyncPublisher struct{}

func (noopSyncPublisher) PublishCartSynced(ctx context.Context, userID string, snapshot domain.CartSnapshot) error {
	return nil
}

func newCartRouter(api *fakeCartAPI) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sync := cart.NewSynchronizer(api, noopSyncPublisher{}, logger)
	h := NewCartHandler(sync, logger)

	r := chi.NewRouter()
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/", h.AddItem)
		r.Put("/", h.UpdateItemQuantity)
		r.Delete("/", h.RemoveItem)
	})
	return r
}

// bearerFor builds an unsigned token carrying the nameidentifier claim, the
// same shape the users service issues.
func bearerFor(userID string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(
		`{"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier":%q}`, userID,
	)))
	return header + "." + payload + ".sig"
}

func authedRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+bearerFor("42"))
	return req
}

// --- Tests ---

func TestGetCart_ReturnsItemsAndTotal(t *testing.T) {
	api := &fakeCartAPI{snapshot: domain.CartSnapshot{
		Items: []domain.CartItem{{ProductID: 1, ProductName: "Tênis", Price: 199.9, Quantity: 2}},
		Total: 399.8,
	}}
	router := newCartRouter(api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[{"productId":1,"productName":"Tênis","price":199.9,"quantity":2}],"total":399.8}`, rec.Body.String())
}

func TestGetCart_IdentityFromBearerHeader(t *testing.T) {
	api := &fakeCartAPI{}
	router := newCartRouter(api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	// The user ID comes from the token claims, and the raw token is handed
	// down for the outbound call.
	assert.Equal(t, []int64{42}, api.seenUserIDs())
	assert.Equal(t, []string{bearerFor("42")}, api.seenTokens())
}

func TestGetCart_NoAuthorizationHeader(t *testing.T) {
	api := &fakeCartAPI{}
	router := newCartRouter(api)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
	assert.Empty(t, api.seenUserIDs())
}

func TestGetCart_MalformedBearerToken(t *testing.T) {
	router := newCartRouter(&fakeCartAPI{})

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "sessão inválida")
}

func TestGetCart_RemoteStatusForwarded(t *testing.T) {
	api := &fakeCartAPI{err: apperrors.Remote("carts", http.StatusNotFound, "carrinho não encontrado")}
	router := newCartRouter(api)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "carrinho não encontrado")
}

func TestAddItem_MissingProductID(t *testing.T) {
	router := newCartRouter(&fakeCartAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart", `{"quantity":2}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"productId é obrigatório"}`, rec.Body.String())
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	router := newCartRouter(&fakeCartAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart", `{"productId":1,"quantity":0}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveItem_MissingProductID(t *testing.T) {
	router := newCartRouter(&fakeCartAPI{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart", `{}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"productId é obrigatório"}`, rec.Body.String())
}

func TestUpdateItemQuantity_OK(t *testing.T) {
	api := &fakeCartAPI{snapshot: domain.CartSnapshot{
		Items: []domain.CartItem{{ProductID: 7, ProductName: "Meia", Price: 5, Quantity: 4}},
		Total: 20,
	}}
	router := newCartRouter(api)

	// Prime the local snapshot so the quantity update has a line to touch.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/cart", `{"productId":7,"quantity":4}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":20`)
}
