// Package nav abstracts page navigation. Services decide where the user
// should go next (login after expiry, home after login, the payment gateway
// after checkout) without knowing how the redirect is delivered.
package nav

import (
	"context"
	"log/slog"
	"sync"
)

// Navigator reports and changes the user's current location.
type Navigator interface {
	// Current returns the path the user is on.
	Current() string
	// Go sends the user to the given location. Absolute URLs leave the
	// storefront; paths stay inside it.
	Go(ctx context.Context, location string)
}

// Tracker is an in-memory Navigator. The handler layer updates it from
// request headers; services read it to decide redirect behavior.
type Tracker struct {
	mu      sync.RWMutex
	current string
	logger  *slog.Logger
}

// NewTracker creates a Tracker starting at the storefront root.
func NewTracker(logger *slog.Logger) *Tracker {
	return &Tracker{current: "/", logger: logger}
}

// Current returns the last recorded location.
func (t *Tracker) Current() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// SetCurrent records the user's location, typically from a Referer or
// page header on each request.
func (t *Tracker) SetCurrent(path string) {
	if path == "" {
		return
	}
	t.mu.Lock()
	t.current = path
	t.mu.Unlock()
}

// Go records the navigation target and logs it. Delivery to the browser
// happens through the response of the request that triggered it.
func (t *Tracker) Go(ctx context.Context, location string) {
	t.mu.Lock()
	t.current = location
	t.mu.Unlock()

	t.logger.InfoContext(ctx, "navigation",
		slog.String("location", location),
	)
}
