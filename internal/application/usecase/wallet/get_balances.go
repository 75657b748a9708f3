// Package wallet contains wallet and payment-stream use cases.
package wallet

import (
	"context"
	"fmt"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// GetBalancesInput represents the input for a balance lookup.
type GetBalancesInput struct {
	ChainID int64
	Address string
}

// GetBalancesOutput represents the output of a balance lookup.
type GetBalancesOutput struct {
	Balances []entity.TokenBalance
	Cached   bool
}

// GetBalancesUseCase reads token balances through the chain client, serving
// repeat lookups from the cache.
type GetBalancesUseCase struct {
	chainClient adapter.ChainClient
	cache       adapter.BalanceCache
}

// NewGetBalancesUseCase creates a new GetBalancesUseCase instance. The cache
// may be nil when no Redis is configured.
func NewGetBalancesUseCase(chainClient adapter.ChainClient, cache adapter.BalanceCache) *GetBalancesUseCase {
	return &GetBalancesUseCase{
		chainClient: chainClient,
		cache:       cache,
	}
}

// Execute performs the balance lookup.
func (uc *GetBalancesUseCase) Execute(ctx context.Context, input GetBalancesInput) (*GetBalancesOutput, error) {
	if uc.cache != nil {
		if balances, ok := uc.cache.Get(ctx, input.ChainID, input.Address); ok {
			return &GetBalancesOutput{Balances: balances, Cached: true}, nil
		}
	}

	balances, err := uc.chainClient.GetTokenBalances(ctx, input.ChainID, input.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get token balances: %w", err)
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, input.ChainID, input.Address, balances)
	}

	return &GetBalancesOutput{Balances: balances}, nil
}
