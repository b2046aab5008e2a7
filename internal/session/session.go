// Package session defines the persisted authenticated state and the
// capability interfaces over its store. Consumers that only read take a
// Reader; the login flow, which is the sole writer, takes the full Store.
package session

import (
	"context"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// Reader provides read access to the current session.
type Reader interface {
	// Current returns the stored session, or (nil, nil) when no one is
	// logged in.
	Current(ctx context.Context) (*domain.Session, error)
	// Token returns the bearer token of the current session. It returns
	// ErrNotAuthenticated when no session exists.
	Token(ctx context.Context) (string, error)
}

// Writer provides mutation access to the session.
type Writer interface {
	Save(ctx context.Context, s domain.Session) error
	// Clear removes the session and every session-scoped preference.
	Clear(ctx context.Context) error
}

// Store combines read and write access.
type Store interface {
	Reader
	Writer
}

// Preferences holds small user-scoped settings that live alongside the
// session, such as the storefront accent color.
type Preferences interface {
	AccentColor(ctx context.Context) (string, error)
	SetAccentColor(ctx context.Context, color string) error
}

type tokenContextKey struct{}

// ContextWithToken returns a context carrying a request-scoped bearer token.
// The HTTP surface extracts it from the incoming Authorization header;
// outbound calls prefer it over the stored session's token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFromContext extracts the request-scoped bearer token, if one is set.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}
