// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/subtrack/backend/internal/domain/entity"
)

// ChainClient wraps the chain RPC client used by the wallet service.
type ChainClient interface {
	// GetTokenBalances returns the native balance plus tracked token balances for
	// an address on the given chain.
	GetTokenBalances(ctx context.Context, chainID int64, address string) ([]entity.TokenBalance, error)

	// EstimateTransferGas estimates the cost of a simple native transfer using the
	// chain's suggested gas price and the standard 21000 gas limit.
	EstimateTransferGas(ctx context.Context, chainID int64, from, to string) (*entity.GasEstimate, error)

	// SupportedChains lists the chains the client can talk to.
	SupportedChains() []entity.ChainInfo
}

// BalanceCache caches token balance lookups keyed by chain and address.
// Implementations are nil-safe on miss: a failed or absent cache entry must
// never fail the lookup.
type BalanceCache interface {
	// Get returns the cached balances and whether the entry was present.
	Get(ctx context.Context, chainID int64, address string) ([]entity.TokenBalance, bool)

	// Set stores balances for the configured TTL.
	Set(ctx context.Context, chainID int64, address string, balances []entity.TokenBalance)
}
