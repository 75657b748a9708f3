// Package subscription contains subscription-related use cases.
package subscription

import (
	"context"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// GetStatsOutput represents the derived statistics of the current collection.
type GetStatsOutput struct {
	Stats *entity.SubscriptionStats
}

// GetStatsUseCase derives aggregate statistics from the subscription collection.
type GetStatsUseCase struct {
	subscriptionRepo adapter.SubscriptionRepository
}

// NewGetStatsUseCase creates a new GetStatsUseCase instance.
func NewGetStatsUseCase(subscriptionRepo adapter.SubscriptionRepository) *GetStatsUseCase {
	return &GetStatsUseCase{
		subscriptionRepo: subscriptionRepo,
	}
}

// Execute recomputes stats from a snapshot of the collection. An empty
// collection yields zeroed stats, never an error.
func (uc *GetStatsUseCase) Execute(ctx context.Context) (*GetStatsOutput, error) {
	subscriptions, err := uc.subscriptionRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return &GetStatsOutput{
		Stats: entity.ComputeSubscriptionStats(subscriptions),
	}, nil
}
