package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"fmt"           // Cache key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// TTL for cached list pages
const ListCacheTTL = 60 * time.Second

// How many leading pages are deleted on write-path invalidation
const invalidatedPages = 5

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// ListPageKey builds the cache key of one page of a list query
func ListPageKey(prefix string, page, size int, sortColumn, order string) string {
	return fmt.Sprintf("%s:page:%d:size:%d:sort:%s:%s", prefix, page, size, sortColumn, order)
}

// InvalidateListPages deletes the leading default-shaped cached pages under
// each prefix (simple version: first 5 pages of the default page size and
// sort; non-default pages age out via the TTL)
func InvalidateListPages(ctx context.Context, rdb *redis.Client, prefixes ...string) {
	if rdb == nil {
		return
	}
	for _, prefix := range prefixes {
		for i := 1; i <= invalidatedPages; i++ {
			_ = DeleteCache(ctx, rdb, ListPageKey(prefix, i, 10, "created_at", "desc"))
		}
	}
}
