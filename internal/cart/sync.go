// Package cart keeps a local snapshot of the remote cart in step with the
// carts service. Mutations are sent to the remote first and applied locally
// only after the remote accepts them, so the snapshot never shows state the
// backend rejected.
package cart

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	apperrors "github.com/gabrieldeoliveira04/STORE-e-commerce/pkg/errors"

	"github.com/gabrieldeoliveira04/STORE-e-commerce/internal/domain"
)

// API is the slice of the carts service the synchronizer needs.
type API interface {
	GetCart(ctx context.Context, userID int64) (domain.CartSnapshot, error)
	AddCartItem(ctx context.Context, userID, productID int64, quantity int) error
	RemoveCartItem(ctx context.Context, userID, productID int64) error
	UpdateCartItem(ctx context.Context, userID, productID int64, quantity int) error
}

// SyncPublisher emits the cart.synced event.
type SyncPublisher interface {
	PublishCartSynced(ctx context.Context, userID string, snapshot domain.CartSnapshot) error
}

// Synchronizer owns the local cart snapshot and serializes mutations per
// product: a second mutation for a product whose first mutation is still in
// flight is rejected with a conflict instead of queued.
type Synchronizer struct {
	api    API
	events SyncPublisher
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot domain.CartSnapshot

	inflightMu sync.Mutex
	inflight   map[int64]bool
}

// NewSynchronizer creates a Synchronizer with an empty snapshot.
func NewSynchronizer(api API, events SyncPublisher, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		api:      api,
		events:   events,
		logger:   logger,
		inflight: make(map[int64]bool),
	}
}

// Snapshot returns a copy of the current local cart state.
func (s *Synchronizer) Snapshot() domain.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Clone()
}

// Refresh replaces the local snapshot with the remote cart. The remote total
// is taken as-is on a full refresh.
func (s *Synchronizer) Refresh(ctx context.Context, userID int64) (domain.CartSnapshot, error) {
	remote, err := s.api.GetCart(ctx, userID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	s.mu.Lock()
	s.snapshot = remote
	result := s.snapshot.Clone()
	s.mu.Unlock()

	s.publishSynced(ctx, userID, result)
	return result, nil
}

// AddItem adds quantity units of a product and refreshes the snapshot, since
// the remote merges duplicate lines and recomputes pricing server side.
func (s *Synchronizer) AddItem(ctx context.Context, userID, productID int64, quantity int) (domain.CartSnapshot, error) {
	if quantity < 1 {
		return domain.CartSnapshot{}, apperrors.InvalidInput("quantidade deve ser no mínimo 1")
	}

	release, err := s.acquire(productID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	defer release()

	if err := s.api.AddCartItem(ctx, userID, productID, quantity); err != nil {
		return domain.CartSnapshot{}, err
	}

	return s.Refresh(ctx, userID)
}

// RemoveItem deletes a product line. The local snapshot is updated only
// after the remote confirms, then the total is recomputed locally.
func (s *Synchronizer) RemoveItem(ctx context.Context, userID, productID int64) (domain.CartSnapshot, error) {
	release, err := s.acquire(productID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	defer release()

	if err := s.api.RemoveCartItem(ctx, userID, productID); err != nil {
		return domain.CartSnapshot{}, err
	}

	s.mu.Lock()
	if i := s.snapshot.FindItemIndex(productID); i >= 0 {
		s.snapshot.Items = append(s.snapshot.Items[:i], s.snapshot.Items[i+1:]...)
		s.snapshot.RecomputeTotal()
	}
	result := s.snapshot.Clone()
	s.mu.Unlock()

	s.publishSynced(ctx, userID, result)
	return result, nil
}

// UpdateQuantity sets a product line to the given quantity. Quantities below
// one are rejected before any network traffic.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) (domain.CartSnapshot, error) {
	if quantity < 1 {
		return domain.CartSnapshot{}, apperrors.InvalidInput("quantidade deve ser no mínimo 1")
	}

	release, err := s.acquire(productID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}
	defer release()

	if err := s.api.UpdateCartItem(ctx, userID, productID, quantity); err != nil {
		return domain.CartSnapshot{}, err
	}

	s.mu.Lock()
	i := s.snapshot.FindItemIndex(productID)
	if i >= 0 {
		s.snapshot.Items[i].Quantity = quantity
		s.snapshot.RecomputeTotal()
	}
	result := s.snapshot.Clone()
	s.mu.Unlock()

	// The remote accepted a product the snapshot has never seen; resync.
	if i < 0 {
		return s.Refresh(ctx, userID)
	}

	s.publishSynced(ctx, userID, result)
	return result, nil
}

// Reset drops the local snapshot, typically on logout or session expiry.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	s.snapshot = domain.CartSnapshot{}
	s.mu.Unlock()
}

// acquire marks a product as having a mutation in flight. It fails with a
// conflict when one is already running.
func (s *Synchronizer) acquire(productID int64) (func(), error) {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()

	if s.inflight[productID] {
		return nil, apperrors.Conflict("operação em andamento para este produto")
	}
	s.inflight[productID] = true

	return func() {
		s.inflightMu.Lock()
		delete(s.inflight, productID)
		s.inflightMu.Unlock()
	}, nil
}

func (s *Synchronizer) publishSynced(ctx context.Context, userID int64, snapshot domain.CartSnapshot) {
	if err := s.events.PublishCartSynced(ctx, strconv.FormatInt(userID, 10), snapshot); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.synced event",
			slog.String("error", err.Error()),
		)
	}
}
