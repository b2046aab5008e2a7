package httpclient

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// Doer executes a single HTTP request. Both the base Client and the
// CircuitBreakerClient satisfy it, as does every installed Middleware.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// DoerFunc adapts a function to the Doer interface.
type DoerFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

// Do calls f(ctx, req).
func (f DoerFunc) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

// Middleware wraps a Doer, observing or altering every request/response pair
// that flows through the client. Middlewares replace ad-hoc transport
// monkey-patching: they are installed explicitly and removed explicitly.
type Middleware func(next Doer) Doer

// Config holds HTTP client configuration.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int
}

// DefaultConfig returns sensible defaults for the HTTP client.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// Client wraps http.Client with retry logic, connection pooling, and an
// explicit middleware chain. Every response is observed by each installed
// middleware exactly once, after retries have resolved.
type Client struct {
	httpClient *http.Client
	config     Config

	mu    sync.RWMutex
	chain []*chainEntry
}

// chainEntry gives each installed middleware a stable identity so removal
// works regardless of the order middlewares are uninstalled in.
type chainEntry struct {
	m Middleware
}

// New creates a new HTTP client with retry and connection pooling.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}
}

// Use installs a middleware on the client and returns a function that removes
// it again, restoring the previous behavior. Install happens once at
// application start; the returned remove function is the teardown hook.
func (c *Client) Use(m Middleware) (remove func()) {
	entry := &chainEntry{m: m}

	c.mu.Lock()
	c.chain = append(c.chain, entry)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for i, e := range c.chain {
				if e == entry {
					c.chain = append(c.chain[:i], c.chain[i+1:]...)
					return
				}
			}
		})
	}
}

// Do executes the request through the middleware chain and retry logic.
// Middlewares run in installation order, outermost first.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var doer Doer = DoerFunc(c.doWithRetry)

	c.mu.RLock()
	for i := len(c.chain) - 1; i >= 0; i-- {
		doer = c.chain[i].m(doer)
	}
	c.mu.RUnlock()

	return doer.Do(ctx, req)
}

// doWithRetry is the base executor: retries on network errors and 5xx
// responses with exponential backoff. Requests whose body cannot be replayed
// (no GetBody) are never retried after the first attempt consumed it.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	replayable := req.Body == nil || req.Body == http.NoBody || req.GetBody != nil

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody != nil {
				body, berr := req.GetBody()
				if berr != nil {
					return nil, fmt.Errorf("rewind request body: %w", berr)
				}
				req.Body = body
			}

			wait := c.config.RetryWaitMin * time.Duration(1<<uint(attempt-1))
			if wait > c.config.RetryWaitMax {
				wait = c.config.RetryWaitMax
			}

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err = c.httpClient.Do(req)
		if err != nil {
			if isRetryableError(err) && replayable && attempt < c.config.MaxRetries {
				continue
			}
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		}

		// Retry on 5xx errors (except 501 Not Implemented).
		if resp.StatusCode >= 500 && resp.StatusCode != 501 && replayable && attempt < c.config.MaxRetries {
			resp.Body.Close()
			continue
		}

		return resp, nil
	}

	return resp, err
}

// Get performs an HTTP GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create GET request: %w", err)
	}
	return c.Do(ctx, req)
}

// Post performs an HTTP POST request.
func (c *Client) Post(ctx context.Context, url string, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create POST request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.Do(ctx, req)
}

// isRetryableError determines whether an error warrants another attempt.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	return false
}
