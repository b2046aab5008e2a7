package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Timeout:      5 * time.Second,
		MaxRetries:   2,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := New(testConfig())
	resp, err := c.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := New(testConfig())
	resp, err := c.Get(context.Background(), srv.URL)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_RetriesResendRequestBody(t *testing.T) {
	var mu sync.Mutex
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := New(testConfig())
	resp, err := c.Post(context.Background(), srv.URL, "application/json", strings.NewReader(`{"productId":1}`))

	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Equal(t, `{"productId":1}`, bodies[0])
	// The retried attempt carries the full body again, not a drained reader.
	assert.Equal(t, `{"productId":1}`, bodies[1])
}

func TestClient_MiddlewareObservesFinalResponse(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := New(testConfig())

	var observed []int
	c.Use(func(next Doer) Doer {
		return DoerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			resp, err := next.Do(ctx, req)
			if resp != nil {
				observed = append(observed, resp.StatusCode)
			}
			return resp, err
		})
	})

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	// Retries resolve below the chain; the middleware sees one final response.
	assert.Equal(t, []int{http.StatusOK}, observed)
}

func TestClient_MiddlewareOrderAndRemoval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := New(testConfig())

	var order []string
	tag := func(name string) Middleware {
		return func(next Doer) Doer {
			return DoerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.Do(ctx, req)
			})
		}
	}

	removeA := c.Use(tag("a"))
	removeB := c.Use(tag("b"))

	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, []string{"a", "b"}, order)

	// Removal restores the previous chain; removing twice is harmless.
	order = nil
	removeA()
	removeA()

	resp, err = c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, []string{"b"}, order)

	order = nil
	removeB()

	resp, err = c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Empty(t, order)
}
