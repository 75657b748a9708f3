// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// SubscriptionRepository defines the interface for the subscription ledger.
// Implementations must serialize mutations and hand out snapshots on reads, so
// that no caller ever observes a partially-applied mutation.
type SubscriptionRepository interface {
	// Create appends a new subscription to the collection.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// FindByID retrieves a subscription by its ID.
	// Returns domainerror.ErrSubscriptionNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// FindAll returns a snapshot of the whole collection in insertion order.
	FindAll(ctx context.Context) ([]*entity.Subscription, error)

	// Update replaces the stored record matching the subscription's ID.
	// Returns domainerror.ErrSubscriptionNotFound when absent.
	Update(ctx context.Context, subscription *entity.Subscription) error

	// Delete removes the subscription matching the ID. Deleting an unknown ID is
	// an error, never a silent no-op.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceAll atomically swaps the whole collection for the given set.
	ReplaceAll(ctx context.Context, subscriptions []*entity.Subscription) error
}
