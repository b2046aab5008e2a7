// Package token extracts identity claims from bearer tokens issued by the
// users service without verifying the signature. Verification happens
// upstream; locally the token is only a source of display identity, so a
// token that cannot be decoded degrades to an anonymous session instead of
// failing the request.
package token

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// Claim URIs used by the .NET-style identity provider behind the users
// service.
const (
	claimNameIdentifier = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimEmailAddress   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimRole           = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
)

// Decode parses the claims out of a bearer token. An empty token returns
// (nil, nil): the caller treats it as an anonymous session. A malformed token
// returns ErrDecode so callers can log it and fall back to anonymous.
func Decode(raw string) (*domain.TokenClaims, error) {
	if raw == "" {
		return nil, nil
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDecode, fmt.Sprintf("parse token: %v", err))
	}

	id, err := asInt64(claims[claimNameIdentifier])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrDecode, fmt.Sprintf("claim nameidentifier: %v", err))
	}

	out := &domain.TokenClaims{UserID: id}
	if email, ok := claims[claimEmailAddress].(string); ok {
		out.Email = email
	}
	if role, ok := claims[claimRole].(string); ok {
		out.Role = role
	}
	return out, nil
}

// asInt64 accepts the numeric representations the users service has been
// observed to emit for the subject claim.
func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case string:
		return strconv.ParseInt(n, 10, 64)
	case int64:
		return n, nil
	case nil:
		return 0, fmt.Errorf("claim missing")
	default:
		return 0, fmt.Errorf("unsupported claim type %T", v)
	}
}
