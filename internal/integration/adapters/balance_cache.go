package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/subtrack/backend/internal/application/adapter"
	"github.com/subtrack/backend/internal/domain/entity"
)

// defaultBalanceTTL keeps cached balances fresh enough for a wallet screen.
const defaultBalanceTTL = 60 * time.Second

// redisBalanceCache implements the adapter.BalanceCache interface on Redis.
type redisBalanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBalanceCache creates a balance cache over the given Redis client. A
// non-positive TTL falls back to the default.
func NewRedisBalanceCache(client *redis.Client, ttl time.Duration) adapter.BalanceCache {
	if ttl <= 0 {
		ttl = defaultBalanceTTL
	}
	return &redisBalanceCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached balances for the chain and address, if present.
func (c *redisBalanceCache) Get(ctx context.Context, chainID int64, address string) ([]entity.TokenBalance, bool) {
	payload, err := c.client.Get(ctx, balanceKey(chainID, address)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("Balance cache read failed", "error", err)
		}
		return nil, false
	}

	var balances []entity.TokenBalance
	if err := json.Unmarshal([]byte(payload), &balances); err != nil {
		slog.Warn("Balance cache entry is corrupt", "error", err)
		return nil, false
	}
	return balances, true
}

// Set stores the balances for the chain and address.
func (c *redisBalanceCache) Set(ctx context.Context, chainID int64, address string, balances []entity.TokenBalance) {
	payload, err := json.Marshal(balances)
	if err != nil {
		slog.Warn("Balance cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, balanceKey(chainID, address), payload, c.ttl).Err(); err != nil {
		slog.Warn("Balance cache write failed", "error", err)
	}
}

func balanceKey(chainID int64, address string) string {
	return fmt.Sprintf("balances:%d:%s", chainID, strings.ToLower(address))
}
