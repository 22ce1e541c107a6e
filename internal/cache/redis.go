package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"treelink-backend/internal/models"
)

// ProfileCache is a read-through cache for public handle lookups. A miss is
// (nil, nil). Callers treat the cache as best effort: every error is
// recoverable by falling back to the store.
type ProfileCache interface {
	Get(ctx context.Context, handle string) (*models.LinkProfile, error)
	Set(ctx context.Context, handle string, profile *models.LinkProfile) error
	Invalidate(ctx context.Context, handles ...string) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
	TTL      time.Duration
}

func NewRedisCache(cfg RedisConfig) ProfileCache {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(opts)
	return &redisCache{client: rdb, ttl: cfg.TTL}
}

func profileKey(handle string) string {
	return fmt.Sprintf("treelink:profile:%s", handle)
}

func (r *redisCache) Get(ctx context.Context, handle string) (*models.LinkProfile, error) {
	val, err := r.client.Get(ctx, profileKey(handle)).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var profile models.LinkProfile
	if err := json.Unmarshal(val, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *redisCache) Set(ctx context.Context, handle string, profile *models.LinkProfile) error {
	val, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey(handle), val, r.ttl).Err()
}

// Invalidate drops cached lookups after a mutation so an edited profile (or a
// released handle) is visible to the next public read.
func (r *redisCache) Invalidate(ctx context.Context, handles ...string) error {
	keys := make([]string, 0, len(handles))
	for _, h := range handles {
		if h != "" {
			keys = append(keys, profileKey(h))
		}
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
