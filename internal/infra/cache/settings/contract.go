package settings

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client подмножество команд redis, которое использует кеш (реализуется *redis.Client)
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
