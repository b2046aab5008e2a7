// Package shipping resolves delivery addresses and freight quotes for the
// storefront. All parcels use the standard box profile and ship from the
// store's warehouse CEP.
package shipping

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// API is the slice of the remote clients the resolver needs.
type API interface {
	LookupAddress(ctx context.Context, cep string) (domain.Address, error)
	CalculateShipping(ctx context.Context, req domain.ShippingRequest) ([]domain.ShippingQuote, error)
}

// Resolver validates CEPs locally and queries the remote services.
type Resolver struct {
	api       API
	originCEP string
	logger    *slog.Logger
}

// NewResolver creates a Resolver shipping from the given origin CEP.
func NewResolver(api API, originCEP string, logger *slog.Logger) *Resolver {
	return &Resolver{api: api, originCEP: originCEP, logger: logger}
}

// normalizeCEP strips formatting and validates length. Invalid CEPs are
// rejected before any network traffic.
func normalizeCEP(cep string) (string, error) {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) != 8 {
		return "", apperrors.InvalidInput("CEP inválido")
	}
	return digits, nil
}

// LookupAddress resolves a customer CEP to a postal address.
func (r *Resolver) LookupAddress(ctx context.Context, cep string) (domain.Address, error) {
	digits, err := normalizeCEP(cep)
	if err != nil {
		return domain.Address{}, err
	}
	return r.api.LookupAddress(ctx, digits)
}

// Quote returns every carrier's answer for delivering the standard box to
// the given CEP, including entries that carry errors.
func (r *Resolver) Quote(ctx context.Context, toCEP string) ([]domain.ShippingQuote, error) {
	digits, err := normalizeCEP(toCEP)
	if err != nil {
		return nil, err
	}

	quotes, err := r.api.CalculateShipping(ctx, domain.ShippingRequest{
		FromCEP: r.originCEP,
		ToCEP:   digits,
		Package: domain.DefaultPackage,
	})
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "shipping quotes received",
		slog.String("to_cep", digits),
		slog.Int("carriers", len(quotes)),
	)
	return quotes, nil
}

// CheapestQuote quotes the route and picks the lowest-priced usable carrier.
func (r *Resolver) CheapestQuote(ctx context.Context, toCEP string) (domain.ShippingQuote, error) {
	quotes, err := r.Quote(ctx, toCEP)
	if err != nil {
		return domain.ShippingQuote{}, err
	}
	return SelectCheapest(quotes)
}

// SelectCheapest returns the lowest-priced quote among the usable ones. Ties
// keep the earliest entry, matching carrier ordering from the calculator.
func SelectCheapest(quotes []domain.ShippingQuote) (domain.ShippingQuote, error) {
	var best domain.ShippingQuote
	found := false
	for _, q := range quotes {
		if !q.Usable() {
			continue
		}
		if !found || q.Price < best.Price {
			best = q
			found = true
		}
	}
	if !found {
		return domain.ShippingQuote{}, apperrors.NoCarrierAvailable()
	}
	return best, nil
}
