// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/subtrack/backend/internal/domain/entity"
)

// SubscriptionProvider is the external fetch collaborator used to repopulate the
// ledger. The ledger treats it as a black box behind this narrow contract and
// never depends on its timing.
type SubscriptionProvider interface {
	// FetchAll retrieves the provider's full subscription set.
	FetchAll(ctx context.Context) ([]*entity.Subscription, error)
}
