// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/subtrack/backend/internal/domain/entity"
)

// PaymentStreamRepository defines the interface for payment stream persistence.
type PaymentStreamRepository interface {
	// Create stores a new payment stream.
	Create(ctx context.Context, stream *entity.PaymentStream) error

	// FindByID retrieves a payment stream by its ID.
	// Returns domainerror.ErrStreamNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PaymentStream, error)

	// FindBySubscription retrieves all streams created for a subscription.
	FindBySubscription(ctx context.Context, subscriptionID uuid.UUID) ([]*entity.PaymentStream, error)

	// FindAll returns all payment streams, newest first.
	FindAll(ctx context.Context) ([]*entity.PaymentStream, error)

	// Update replaces the stored stream matching the stream's ID.
	Update(ctx context.Context, stream *entity.PaymentStream) error
}
