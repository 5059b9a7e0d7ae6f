package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"farmstay-server/config"
)

var Cache *redis.Client

// InitializeCache connects the Redis client used for public page payloads.
// Redis being down is not fatal: cache reads miss and handlers fall through
// to Postgres.
func InitializeCache() {
	cfg := config.AppConfig.Redis

	Cache = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	if err := Cache.Ping(context.Background()).Err(); err != nil {
		log.Printf("⚠️  Redis not reachable at %s, public caching disabled: %v", cfg.Addr, err)
	} else {
		log.Println("🔧 Redis cache initialized at", cfg.Addr)
	}
}

// CacheGet loads a cached JSON payload into dest; returns false on miss or
// any cache error
func CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if Cache == nil {
		return false
	}
	data, err := Cache.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

// CacheSet stores a JSON payload with the configured public TTL
func CacheSet(ctx context.Context, key string, value interface{}) {
	if Cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	ttl := time.Duration(config.AppConfig.Redis.CacheTTL) * time.Second
	if err := Cache.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("⚠️  Cache set failed for %s: %v", key, err)
	}
}

// CacheInvalidate drops keys after an admin write
func CacheInvalidate(ctx context.Context, keys ...string) {
	if Cache == nil || len(keys) == 0 {
		return
	}
	if err := Cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️  Cache invalidation failed: %v", err)
	}
}
