// Package redis persists the storefront session in Redis. The session is a
// single-user state (this service fronts one browser session), so fixed keys
// are used rather than per-user namespacing.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

const (
	sessionKey     = "storefront:session"
	accentColorKey = "storefront:accent-color"
)

// Store implements session.Store and session.Preferences on Redis.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// NewStore creates a Redis-backed session store.
func NewStore(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Current returns the stored session. A missing key means no one is logged
// in, which is not an error. A malformed stored value is treated the same
// way, after logging, so a corrupted entry cannot wedge the storefront.
func (s *Store) Current(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.logger.WarnContext(ctx, "discarding malformed session entry",
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &sess, nil
}

// Token returns the bearer token of the current session.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	if sess == nil || sess.Token == "" {
		return "", apperrors.ErrNotAuthenticated
	}
	return sess.Token, nil
}

// Save stores the session. No TTL is set: the session lives until an
// explicit logout or an expiry signal from the remote API.
func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the session and every session-scoped preference.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey, accentColorKey).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccentColor returns the stored accent color, or empty when unset.
func (s *Store) AccentColor(ctx context.Context) (string, error) {
	color, err := s.client.Get(ctx, accentColorKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get accent color: %w", err)
	}
	return color, nil
}

// SetAccentColor stores the accent color preference.
func (s *Store) SetAccentColor(ctx context.Context, color string) error {
	if err := s.client.Set(ctx, accentColorKey, color, 0).Err(); err != nil {
		return fmt.Errorf("set accent color: %w", err)
	}
	return nil
}

// Ping checks Redis connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
