package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis

// RedisAddr starts (once) an in-process Redis and returns its address for
// configuring the balance cache.
func RedisAddr() string {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
	})
	return redisServer.Addr()
}

// ClearRedis flushes everything cached between scenarios.
func ClearRedis() error {
	if redisServer == nil {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	defer client.Close()
	return client.FlushAll(context.Background()).Err()
}
