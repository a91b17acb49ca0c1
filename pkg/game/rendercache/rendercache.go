// Package rendercache stores finished bubble images keyed by their request.
//
// Keys are "{prefix}:{xxhash64 of the canonical request JSON}". Only encoded
// images are cached; sprites are still read from disk on every render.
package rendercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
	"github.com/zyedidia/generic/cache"

	"galbubble/pkg/game/bubble"
)

// Store is a byte cache for rendered images.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, png []byte) error
}

// Key derives the cache key for a resolved request.
func Key(prefix string, req bubble.Request) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("rendercache: marshal request: %w", err)
	}
	return prefix + ":" + strconv.FormatUint(xxhash.Sum64(data), 16), nil
}

// Redis keeps images in Redis with a TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis wraps a go-redis client. A zero ttl stores entries without expiry.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("rendercache: redis get %s: %w", key, err)
	}
	return data, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, png []byte) error {
	if err := r.client.Set(ctx, key, png, r.ttl).Err(); err != nil {
		return fmt.Errorf("rendercache: redis set %s: %w", key, err)
	}
	return nil
}

// Memory is a bounded in-process LRU.
type Memory struct {
	mu  sync.Mutex
	lru *cache.Cache[string, []byte]
}

// NewMemory creates an LRU holding up to entries images.
func NewMemory(entries int) *Memory {
	return &Memory{lru: cache.New[string, []byte](max(entries, 1))}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.lru.Get(key)
	return data, ok, nil
}

func (m *Memory) Put(_ context.Context, key string, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lru.Put(key, png)
	return nil
}

// Len returns the number of cached images.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lru.Size()
}
