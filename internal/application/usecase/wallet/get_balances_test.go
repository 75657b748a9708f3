package wallet

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/subtrack/backend/internal/domain/entity"
)

type fakeChainClient struct {
	balances []entity.TokenBalance
	err      error
	calls    int
}

func (c *fakeChainClient) GetTokenBalances(_ context.Context, _ int64, _ string) ([]entity.TokenBalance, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.balances, nil
}

func (c *fakeChainClient) EstimateTransferGas(_ context.Context, _ int64, _, _ string) (*entity.GasEstimate, error) {
	return &entity.GasEstimate{GasLimit: "21000", GasPrice: "12.5", EstimatedCost: "0.0002625"}, nil
}

func (c *fakeChainClient) SupportedChains() []entity.ChainInfo {
	return nil
}

type fakeBalanceCache struct {
	entries map[string][]entity.TokenBalance
	sets    int
}

func newFakeBalanceCache() *fakeBalanceCache {
	return &fakeBalanceCache{entries: make(map[string][]entity.TokenBalance)}
}

func cacheKey(chainID int64, address string) string {
	return fmt.Sprintf("%d:%s", chainID, address)
}

func (c *fakeBalanceCache) Get(_ context.Context, chainID int64, address string) ([]entity.TokenBalance, bool) {
	balances, ok := c.entries[cacheKey(chainID, address)]
	return balances, ok
}

func (c *fakeBalanceCache) Set(_ context.Context, chainID int64, address string, balances []entity.TokenBalance) {
	c.sets++
	c.entries[cacheKey(chainID, address)] = balances
}

func TestGetBalances(t *testing.T) {
	ctx := context.Background()
	address := "0x2222222222222222222222222222222222222222"
	balances := []entity.TokenBalance{
		{Symbol: "ETH", Name: "Ether", Balance: "1.5", Decimals: 18},
		{Symbol: "USDC", Name: "USD Coin", Address: "0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", Balance: "120.000000", Decimals: 6},
	}

	t.Run("cache miss fetches from chain and fills the cache", func(t *testing.T) {
		client := &fakeChainClient{balances: balances}
		cache := newFakeBalanceCache()

		uc := NewGetBalancesUseCase(client, cache)
		output, err := uc.Execute(ctx, GetBalancesInput{ChainID: 8453, Address: address})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if output.Cached {
			t.Error("first lookup must not report cached")
		}
		if len(output.Balances) != 2 || output.Balances[1].Symbol != "USDC" {
			t.Errorf("unexpected balances: %+v", output.Balances)
		}
		if cache.sets != 1 {
			t.Errorf("expected cache fill, got %d sets", cache.sets)
		}
	})

	t.Run("cache hit skips the chain client", func(t *testing.T) {
		client := &fakeChainClient{balances: balances}
		cache := newFakeBalanceCache()
		cache.Set(ctx, 8453, address, balances)
		cache.sets = 0

		uc := NewGetBalancesUseCase(client, cache)
		output, err := uc.Execute(ctx, GetBalancesInput{ChainID: 8453, Address: address})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if !output.Cached {
			t.Error("expected cached result")
		}
		if client.calls != 0 {
			t.Errorf("chain client called %d times on a cache hit", client.calls)
		}
		if cache.sets != 0 {
			t.Error("cache refilled on a hit")
		}
	})

	t.Run("entries are scoped per chain and address", func(t *testing.T) {
		client := &fakeChainClient{balances: balances}
		cache := newFakeBalanceCache()
		cache.Set(ctx, 1, address, balances)

		uc := NewGetBalancesUseCase(client, cache)
		if _, err := uc.Execute(ctx, GetBalancesInput{ChainID: 8453, Address: address}); err != nil {
			t.Fatalf("execute: %v", err)
		}
		if client.calls != 1 {
			t.Errorf("expected a fetch for the other chain, got %d calls", client.calls)
		}
	})

	t.Run("works without a cache", func(t *testing.T) {
		client := &fakeChainClient{balances: balances}

		uc := NewGetBalancesUseCase(client, nil)
		output, err := uc.Execute(ctx, GetBalancesInput{ChainID: 1, Address: address})
		if err != nil {
			t.Fatalf("execute: %v", err)
		}
		if output.Cached || len(output.Balances) != 2 {
			t.Errorf("unexpected output: %+v", output)
		}
	})

	t.Run("propagates chain client failures", func(t *testing.T) {
		client := &fakeChainClient{err: errors.New("rpc unreachable")}
		cache := newFakeBalanceCache()

		uc := NewGetBalancesUseCase(client, cache)
		if _, err := uc.Execute(ctx, GetBalancesInput{ChainID: 1, Address: address}); err == nil {
			t.Fatal("expected error")
		}
		if cache.sets != 0 {
			t.Error("cache filled despite fetch failure")
		}
	})
}

func TestEstimateGas(t *testing.T) {
	uc := NewEstimateGasUseCase(&fakeChainClient{})
	output, err := uc.Execute(context.Background(), EstimateGasInput{
		ChainID: 1,
		From:    "0x1111111111111111111111111111111111111111",
		To:      "0x2222222222222222222222222222222222222222",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if output.Estimate.GasLimit != "21000" {
		t.Errorf("unexpected gas limit %s", output.Estimate.GasLimit)
	}
}
