package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ShowingService/internal/domain"
)

const keyPrefix = "showing:settings:"

// Cache read-through кеш итоговых настроек календаря в redis
type Cache struct {
	client Client
	ttl    time.Duration
}

// NewCache создает кеш настроек
func NewCache(client Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает настройки владельца из кеша
func (c *Cache) Get(ctx context.Context, ownerID int64) (*domain.CalendarSettings, error) {
	raw, err := c.client.Get(ctx, key(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - owner %d: %v", ErrCacheUnavailable, ownerID, err)
	}

	var settings domain.CalendarSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("%w: Get - owner %d: %v", ErrCorruptedEntry, ownerID, err)
	}

	return &settings, nil
}

// Set сохраняет настройки владельца в кеш
func (c *Cache) Set(ctx context.Context, settings domain.CalendarSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCorruptedEntry, err)
	}

	if err := c.client.Set(ctx, key(settings.OwnerID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - owner %d: %v", ErrCacheUnavailable, settings.OwnerID, err)
	}

	return nil
}

// Invalidate удаляет настройки владельца из кеша
func (c *Cache) Invalidate(ctx context.Context, ownerID int64) error {
	if err := c.client.Del(ctx, key(ownerID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - owner %d: %v", ErrCacheUnavailable, ownerID, err)
	}
	return nil
}

func key(ownerID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, ownerID)
}
