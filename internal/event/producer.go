package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/kafka"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// Kafka topic constants for storefront events.
const (
	TopicSessionExpired    = "storefront.session.expired"
	TopicUserLoggedIn      = "storefront.user.logged_in"
	TopicCartSynced        = "storefront.cart.synced"
	TopicCheckoutInitiated = "storefront.checkout.initiated"
)

// Aggregate type constant.
const AggregateTypeSession = "session"

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// SessionExpiredData is the payload for a session.expired event.
type SessionExpiredData struct {
	UserID string `json:"user_id,omitempty"`
	Path   string `json:"path"`
}

// UserLoggedInData is the payload for a user.logged_in event.
type UserLoggedInData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// CartSyncedData is the payload for a cart.synced event.
type CartSyncedData struct {
	UserID    string  `json:"user_id"`
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// CheckoutInitiatedData is the payload for a checkout.initiated event.
type CheckoutInitiatedData struct {
	UserID      string  `json:"user_id"`
	ItemCount   int     `json:"item_count"`
	Total       float64 `json:"total"`
	ShippingFee float64 `json:"shipping_fee,omitempty"`
}

// Producer publishes storefront events to Kafka. Publishing is best effort:
// callers log failures but never fail the user-facing flow over them.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishSessionExpired publishes a session.expired event.
func (p *Producer) PublishSessionExpired(ctx context.Context, userID, path string) error {
	data := SessionExpiredData{UserID: userID, Path: path}

	aggregateID := userID
	if aggregateID == "" {
		aggregateID = "anonymous"
	}

	event, err := pkgkafka.NewEvent(TopicSessionExpired, aggregateID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create session.expired event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicSessionExpired, event); err != nil {
		return fmt.Errorf("publish session.expired event: %w", err)
	}

	p.logger.DebugContext(ctx, "published session.expired event",
		slog.String("user_id", userID),
		slog.String("path", path),
	)

	return nil
}

// PublishUserLoggedIn publishes a user.logged_in event.
func (p *Producer) PublishUserLoggedIn(ctx context.Context, user domain.User) error {
	data := UserLoggedInData{UserID: user.ID, Email: user.Email}

	event, err := pkgkafka.NewEvent(TopicUserLoggedIn, user.ID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create user.logged_in event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicUserLoggedIn, event); err != nil {
		return fmt.Errorf("publish user.logged_in event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.logged_in event",
		slog.String("user_id", user.ID),
	)

	return nil
}

// PublishCartSynced publishes a cart.synced event.
func (p *Producer) PublishCartSynced(ctx context.Context, userID string, snapshot domain.CartSnapshot) error {
	data := CartSyncedData{
		UserID:    userID,
		ItemCount: len(snapshot.Items),
		Total:     snapshot.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCartSynced, userID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.synced event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartSynced, event); err != nil {
		return fmt.Errorf("publish cart.synced event: %w", err)
	}

	return nil
}

// PublishCheckoutInitiated publishes a checkout.initiated event.
func (p *Producer) PublishCheckoutInitiated(ctx context.Context, userID string, snapshot domain.CartSnapshot, shippingFee float64) error {
	data := CheckoutInitiatedData{
		UserID:      userID,
		ItemCount:   len(snapshot.Items),
		Total:       snapshot.Total,
		ShippingFee: shippingFee,
	}

	event, err := pkgkafka.NewEvent(TopicCheckoutInitiated, userID, AggregateTypeSession, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create checkout.initiated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutInitiated, event); err != nil {
		return fmt.Errorf("publish checkout.initiated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.initiated event",
		slog.String("user_id", userID),
		slog.Float64("total", snapshot.Total),
	)

	return nil
}
