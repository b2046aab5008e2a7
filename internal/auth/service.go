// Package auth runs the login flow: remote authentication, local attempt
// throttling, session persistence, and the post-login redirect.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/nav"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/notify"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/session"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/token"
)

// MaxAttempts is how many consecutive failed logins are tolerated before
// the flow blocks further tries.
const MaxAttempts = 5

const (
	retryMessage   = "Reveja suas credenciais e tente novamente!"
	blockedMessage = "Muitas tentativas"
)

// Authenticator performs the remote login call.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

// Publisher emits the user.logged_in event.
type Publisher interface {
	PublishUserLoggedIn(ctx context.Context, user domain.User) error
}

// CartResetter drops local cart state when the session changes hands.
type CartResetter interface {
	Reset()
}

// Service coordinates login and logout.
type Service struct {
	api      Authenticator
	store    session.Store
	notifier notify.Notifier
	nav      nav.Navigator
	events   Publisher
	carts    CartResetter
	logger   *slog.Logger

	mu           sync.Mutex
	attempts     int
	blockedUntil time.Time
}

// NewService creates the auth service.
func NewService(api Authenticator, store session.Store, notifier notify.Notifier, navigator nav.Navigator, events Publisher, carts CartResetter, logger *slog.Logger) *Service {
	return &Service{
		api:      api,
		store:    store,
		notifier: notifier,
		nav:      navigator,
		events:   events,
		carts:    carts,
		logger:   logger,
	}
}

// Login authenticates the credentials. Failures count toward a local
// attempt budget; the budget's last failure blocks further tries for two
// minutes. A success resets the counter, persists the session, and sends
// the user home.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	s.mu.Lock()
	if until := s.blockedUntil; time.Now().Before(until) {
		s.mu.Unlock()
		s.notifier.Notify(ctx, notify.Notification{
			Title:    blockedMessage,
			Message:  retryMessage,
			Severity: notify.SeverityError,
			Duration: notify.BlockedDuration,
		})
		return nil, apperrors.Forbidden(blockedMessage)
	}
	s.mu.Unlock()

	sess, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, s.recordFailure(ctx, err)
	}

	s.mu.Lock()
	s.attempts = 0
	s.blockedUntil = time.Time{}
	s.mu.Unlock()

	// Claims enrich the stored identity; a token we cannot read still
	// authenticates, it just stays anonymous beyond what login returned.
	if claims, err := token.Decode(sess.Token); err != nil {
		s.logger.WarnContext(ctx, "could not decode session token",
			slog.String("error", err.Error()),
		)
	} else if claims != nil {
		sess.User.Role = claims.Role
		if sess.User.Email == "" {
			sess.User.Email = claims.Email
		}
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.events.PublishUserLoggedIn(ctx, sess.User); err != nil {
		s.logger.WarnContext(ctx, "failed to publish user.logged_in event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", sess.User.ID),
	)

	s.nav.Go(ctx, "/")
	return &sess, nil
}

// recordFailure bumps the attempt counter and notifies the user. Network
// failures do not consume attempts; only rejected credentials do.
func (s *Service) recordFailure(ctx context.Context, cause error) error {
	if !errors.Is(cause, apperrors.ErrNotAuthenticated) && !errors.Is(cause, apperrors.ErrInvalidInput) {
		return cause
	}

	s.mu.Lock()
	s.attempts++
	attempts := s.attempts
	blocked := attempts >= MaxAttempts
	if blocked {
		s.blockedUntil = time.Now().Add(notify.BlockedDuration)
		s.attempts = 0
	}
	s.mu.Unlock()

	n := notify.Notification{
		Title:    retryMessage,
		Severity: notify.SeverityWarning,
		Duration: notify.DefaultDuration,
	}
	if blocked {
		n = notify.Notification{
			Title:    blockedMessage,
			Message:  retryMessage,
			Severity: notify.SeverityError,
			Duration: notify.BlockedDuration,
		}
	}
	s.notifier.Notify(ctx, n)

	s.logger.InfoContext(ctx, "login attempt failed",
		slog.Int("attempts", attempts),
		slog.Bool("blocked", blocked),
	)

	return cause
}

// Logout clears the persisted session and local cart state and sends the
// user to the login page.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.carts.Reset()
	s.nav.Go(ctx, "/login")
	return nil
}
