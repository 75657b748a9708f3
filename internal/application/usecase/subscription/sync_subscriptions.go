// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/subtrack/backend/internal/application/adapter"
	domainerror "github.com/subtrack/backend/internal/domain/error"
)

// SyncSubscriptionsOutput represents the output of a provider sync.
type SyncSubscriptionsOutput struct {
	Count int
}

// SyncSubscriptionsUseCase repopulates the ledger from the external provider.
// The fetched set replaces the local collection: when a provider is configured
// it is the system of record.
type SyncSubscriptionsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
	provider         adapter.SubscriptionProvider
}

// NewSyncSubscriptionsUseCase creates a new SyncSubscriptionsUseCase instance.
// The provider may be nil when no sync backend is configured.
func NewSyncSubscriptionsUseCase(
	subscriptionRepo adapter.SubscriptionRepository,
	provider adapter.SubscriptionProvider,
) *SyncSubscriptionsUseCase {
	return &SyncSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		provider:         provider,
	}
}

// Execute fetches the provider's subscription set and swaps it in atomically.
func (uc *SyncSubscriptionsUseCase) Execute(ctx context.Context) (*SyncSubscriptionsOutput, error) {
	if uc.provider == nil {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeSyncProviderUnavailable,
			"no subscription provider configured",
			domainerror.ErrSyncProviderUnavailable,
		)
	}

	fetched, err := uc.provider.FetchAll(ctx)
	if err != nil {
		return nil, domainerror.NewSubscriptionError(
			domainerror.ErrCodeSyncFailed,
			"provider fetch failed",
			err,
		)
	}

	if err := uc.subscriptionRepo.ReplaceAll(ctx, fetched); err != nil {
		return nil, fmt.Errorf("failed to replace subscriptions: %w", err)
	}

	slog.Info("Synced subscriptions from provider", "count", len(fetched))

	return &SyncSubscriptionsOutput{Count: len(fetched)}, nil
}
