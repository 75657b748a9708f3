// Package memory provides in-memory repository implementations. They back the
// API when no database is configured and serve as fixtures in unit tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// SubscriptionRepository is a mutex-guarded in-memory subscription store. It
// preserves insertion order and returns deep copies, so callers can never
// mutate stored state through a returned entity.
type SubscriptionRepository struct {
	mu    sync.RWMutex
	order []uuid.UUID
	byID  map[uuid.UUID]*entity.Subscription
}

// NewSubscriptionRepository creates an empty in-memory subscription repository.
func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		byID: make(map[uuid.UUID]*entity.Subscription),
	}
}

// Create stores a new subscription.
func (r *SubscriptionRepository) Create(_ context.Context, subscription *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[subscription.ID] = subscription.Clone()
	r.order = append(r.order, subscription.ID)
	return nil
}

// FindByID retrieves a subscription by its ID.
func (r *SubscriptionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscription, ok := r.byID[id]
	if !ok {
		return nil, domainerror.ErrSubscriptionNotFound
	}
	return subscription.Clone(), nil
}

// FindAll returns a snapshot of all subscriptions in insertion order.
func (r *SubscriptionRepository) FindAll(_ context.Context) ([]*entity.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]*entity.Subscription, 0, len(r.order))
	for _, id := range r.order {
		snapshot = append(snapshot, r.byID[id].Clone())
	}
	return snapshot, nil
}

// Update replaces a stored subscription.
func (r *SubscriptionRepository) Update(_ context.Context, subscription *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[subscription.ID]; !ok {
		return domainerror.ErrSubscriptionNotFound
	}
	r.byID[subscription.ID] = subscription.Clone()
	return nil
}

// Delete removes a subscription by its ID.
func (r *SubscriptionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domainerror.ErrSubscriptionNotFound
	}
	delete(r.byID, id)
	for i, storedID := range r.order {
		if storedID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceAll atomically swaps the stored collection for the given one.
func (r *SubscriptionRepository) ReplaceAll(_ context.Context, subscriptions []*entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[uuid.UUID]*entity.Subscription, len(subscriptions))
	r.order = make([]uuid.UUID, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		r.byID[subscription.ID] = subscription.Clone()
		r.order = append(r.order, subscription.ID)
	}
	return nil
}
