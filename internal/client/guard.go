package client

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/httpclient"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/nav"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/notify"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
)

const (
	loginPath = "/Users/login"

	expiredTitle   = "Sessão expirada"
	expiredMessage = "Faça login novamente para continuar."
)

// ExpiryPublisher emits the session.expired event.
type ExpiryPublisher interface {
	PublishSessionExpired(ctx context.Context, userID, path string) error
}

// SessionGuard watches every catalog response for authentication expiry.
// On a 401 outside the login flow it clears the stored session, tells the
// user, and sends them to the login page after a short delay so the
// notification is visible first.
type SessionGuard struct {
	store    session.Store
	nav      nav.Navigator
	notifier notify.Notifier
	events   ExpiryPublisher
	logger   *slog.Logger

	// redirectDelay is how long the expiry notification stays on screen
	// before the redirect fires.
	redirectDelay time.Duration

	// handling prevents a burst of concurrent 401s from stacking up
	// duplicate notifications and redirects.
	handling atomic.Bool
}

// NewSessionGuard creates the guard with the default one second redirect
// delay.
func NewSessionGuard(store session.Store, navigator nav.Navigator, notifier notify.Notifier, events ExpiryPublisher, logger *slog.Logger) *SessionGuard {
	return &SessionGuard{
		store:         store,
		nav:           navigator,
		notifier:      notifier,
		events:        events,
		logger:        logger,
		redirectDelay: time.Second,
	}
}

// Middleware returns the interceptor to install on the shared HTTP client.
func (g *SessionGuard) Middleware() httpclient.Middleware {
	return func(next httpclient.Doer) httpclient.Doer {
		return httpclient.DoerFunc(func(ctx context.Context, req *http.Request) (*http.Response, error) {
			resp, err := next.Do(ctx, req)
			if err != nil {
				return resp, err
			}

			// The login endpoint answers 401 for bad credentials; that is
			// the login flow's business, not an expired session.
			if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(req.URL.Path, loginPath) {
				g.handleExpiry(ctx)
			}

			return resp, err
		})
	}
}

// handleExpiry runs the expiry protocol once per burst. Users already on the
// login page only get their session cleared; redirecting them there again
// would loop.
func (g *SessionGuard) handleExpiry(ctx context.Context) {
	if !g.handling.CompareAndSwap(false, true) {
		return
	}

	current := g.nav.Current()
	if strings.Contains(current, "/login") {
		g.clearSession(ctx, current)
		g.handling.Store(false)
		return
	}

	g.clearSession(ctx, current)

	g.notifier.Notify(ctx, notify.Notification{
		Title:    expiredTitle,
		Message:  expiredMessage,
		Severity: notify.SeverityWarning,
		Duration: notify.DefaultDuration,
	})

	time.AfterFunc(g.redirectDelay, func() {
		// The triggering request's context is likely done by now.
		redirectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		g.nav.Go(redirectCtx, "/login")
		g.handling.Store(false)
	})
}

func (g *SessionGuard) clearSession(ctx context.Context, path string) {
	var userID string
	if sess, err := g.store.Current(ctx); err == nil && sess != nil {
		userID = sess.User.ID
	}

	if err := g.store.Clear(ctx); err != nil {
		g.logger.ErrorContext(ctx, "failed to clear expired session",
			slog.String("error", err.Error()),
		)
	}

	if err := g.events.PublishSessionExpired(ctx, userID, path); err != nil {
		g.logger.WarnContext(ctx, "failed to publish session.expired event",
			slog.String("error", err.Error()),
		)
	}

	g.logger.InfoContext(ctx, "session expired",
		slog.String("user_id", userID),
		slog.String("path", path),
	)
}
