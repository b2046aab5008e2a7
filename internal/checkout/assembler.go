// Package checkout translates the local cart into a payment gateway
// preference and hands the customer off to pay.
package checkout

import (
	"context"
	"log/slog"
	"strconv"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/nav"
)

const currencyBRL = "BRL"

// Gateway creates payment preferences.
type Gateway interface {
	CreatePreference(ctx context.Context, payload domain.CheckoutPayload) (string, error)
}

// Carts exposes the local cart snapshot.
type Carts interface {
	Snapshot() domain.CartSnapshot
}

// Publisher emits the checkout.initiated event.
type Publisher interface {
	PublishCheckoutInitiated(ctx context.Context, userID string, snapshot domain.CartSnapshot, shippingFee float64) error
}

// BuildPayload translates cart lines into the gateway's item format. The
// shipping fee rides along as a separate field when present.
func BuildPayload(snapshot domain.CartSnapshot, shippingFee float64) domain.CheckoutPayload {
	items := make([]domain.CheckoutItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, domain.CheckoutItem{
			Title:      line.ProductName,
			Quantity:   line.Quantity,
			CurrencyID: currencyBRL,
			UnitPrice:  line.Price,
		})
	}
	return domain.CheckoutPayload{Items: items, ShippingFee: shippingFee}
}

// DisplayTotal is the amount shown to the customer before handoff: cart
// total plus freight.
func DisplayTotal(snapshot domain.CartSnapshot, shippingFee float64) float64 {
	return snapshot.Total + shippingFee
}

// Service runs the checkout handoff.
type Service struct {
	gateway Gateway
	carts   Carts
	events  Publisher
	nav     nav.Navigator
	logger  *slog.Logger
}

// NewService creates the checkout service.
func NewService(gateway Gateway, carts Carts, events Publisher, navigator nav.Navigator, logger *slog.Logger) *Service {
	return &Service{
		gateway: gateway,
		carts:   carts,
		events:  events,
		nav:     navigator,
		logger:  logger,
	}
}

// Submit builds the preference from the current cart and sends the customer
// to the gateway's payment URL. An empty cart is rejected before any network
// traffic.
func (s *Service) Submit(ctx context.Context, userID int64, shippingFee float64) (string, error) {
	snapshot := s.carts.Snapshot()
	if snapshot.IsEmpty() {
		return "", apperrors.EmptyCart()
	}

	payload := BuildPayload(snapshot, shippingFee)

	url, err := s.gateway.CreatePreference(ctx, payload)
	if err != nil {
		return "", err
	}

	uid := strconv.FormatInt(userID, 10)
	if err := s.events.PublishCheckoutInitiated(ctx, uid, snapshot, shippingFee); err != nil {
		s.logger.WarnContext(ctx, "failed to publish checkout.initiated event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout handoff",
		slog.String("user_id", uid),
		slog.Float64("total", DisplayTotal(snapshot, shippingFee)),
	)

	s.nav.Go(ctx, url)
	return url, nil
}
