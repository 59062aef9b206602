//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package redis provides a cache.Cache shared through Redis, so several
// evaluation processes reuse one another's scores.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"trpc.group/trpc-go/trpc-response-eval-go/cache"
)

// DefaultPrefix namespaces cache keys.
const DefaultPrefix = "respeval:ethical:"

const (
	defaultPingTimeout = 5 * time.Second
	scanBatch          = 256
)

var _ cache.Cache = (*Cache)(nil)

type options struct {
	prefix string
	ttl    time.Duration
}

// Option configures the Redis cache.
type Option func(*options)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithTTL expires entries after ttl. Zero keeps entries until Clear.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// Cache stores scores as Redis strings.
type Cache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// New connects to the Redis server at url and verifies the connection.
func New(url string, opts ...Option) (*Cache, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewWithClient(client, opts...), nil
}

// NewWithClient wraps an existing client. The caller keeps ownership of it.
func NewWithClient(client redis.UniversalClient, opts ...Option) *Cache {
	o := &options{prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(o)
	}
	return &Cache{client: client, prefix: o.prefix, ttl: o.ttl}
}

// Get implements cache.Cache.
func (c *Cache) Get(ctx context.Context, key string) (float64, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("redis value for %s: %w", key, err)
	}
	return v, true, nil
}

// Set implements cache.Cache with SETNX, so the first writer wins.
func (c *Cache) Set(ctx context.Context, key string, score float64) error {
	val := strconv.FormatFloat(score, 'g', -1, 64)
	if err := c.client.SetNX(ctx, c.prefix+key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Clear deletes every key under the prefix.
func (c *Cache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
