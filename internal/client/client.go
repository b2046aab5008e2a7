// Package client talks to the remote storefront APIs: the catalog backend
// (users, carts, shipping), the CEP lookup service, and the payment gateway.
// Every upstream client carries the session guard middleware, so the guard
// sees every outbound response regardless of which service answered.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httpclient"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

// Config holds the endpoints of the remote services.
type Config struct {
	// APIBaseURL is the catalog backend root, e.g.
	// https://e-commerce-feltec.onrender.com/api.
	APIBaseURL string
	// CheckoutURL is the payment preference endpoint.
	CheckoutURL string
	// CEPBaseURL is the postal address lookup root, e.g.
	// https://viacep.com.br/ws.
	CEPBaseURL string
}

// Client is the typed facade over the remote services. Separate Doers allow
// each upstream to carry its own circuit breaker; all of them carry the
// session guard.
type Client struct {
	api      httpclient.Doer
	cep      httpclient.Doer
	checkout httpclient.Doer
	cfg      Config
	sessions session.Reader
	logger   *slog.Logger
}

// New creates a Client. api handles catalog traffic, cep the address lookup,
// checkout the payment gateway.
func New(api, cep, checkout httpclient.Doer, cfg Config, sessions session.Reader, logger *slog.Logger) *Client {
	return &Client{
		api:      api,
		cep:      cep,
		checkout: checkout,
		cfg: Config{
			APIBaseURL:  strings.TrimRight(cfg.APIBaseURL, "/"),
			CheckoutURL: cfg.CheckoutURL,
			CEPBaseURL:  strings.TrimRight(cfg.CEPBaseURL, "/"),
		},
		sessions: sessions,
		logger:   logger,
	}
}

// doJSON issues a request through the given Doer and decodes a JSON response
// into out. When authenticated is set, the request-scoped token from the
// context is attached as a bearer header, falling back to the stored
// session's token; a missing session surfaces as ErrNotAuthenticated before
// any network traffic.
func (c *Client) doJSON(ctx context.Context, d httpclient.Doer, method, url string, body io.Reader, contentType string, out any, authenticated bool, service string) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	if authenticated {
		token, ok := session.TokenFromContext(ctx)
		if !ok {
			var err error
			token, err = c.sessions.Token(ctx)
			if err != nil {
				return err
			}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := d.Do(ctx, req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrServiceUnavail, fmt.Sprintf("%s unreachable: %v", service, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseRemoteError(resp, service)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}

// jsonBody marshals v into a request body reader.
func jsonBody(v any) (io.Reader, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}
