//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package ethical

import (
	"context"
	"fmt"

	"trpc.group/trpc-go/trpc-response-eval-go/cache"
	"trpc.group/trpc-go/trpc-response-eval-go/cache/inmemory"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/textnorm"
)

const cacheName = "ethical"

var _ Scorer = (*Cached)(nil)

// Cached memoizes an ethical scorer by text fingerprint. The inner scorer
// receives the normalized text, so texts sharing a fingerprint always share
// a score.
type Cached struct {
	inner Scorer
	cache cache.Cache
}

// NewCached wraps inner with c. A nil cache uses a fresh in-memory cache.
func NewCached(inner Scorer, c cache.Cache) *Cached {
	if c == nil {
		c = inmemory.New()
	}
	return &Cached{inner: inner, cache: c}
}

// Score implements Scorer.
func (c *Cached) Score(ctx context.Context, candidate string) (float64, error) {
	text := textnorm.Normalize(candidate)
	key := textnorm.Fingerprint(text)
	v, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("ethical cache lookup: %w", err)
	}
	telemetry.RecordCacheLookup(ctx, cacheName, ok)
	if ok {
		return v, nil
	}
	v, err = c.inner.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	if err := c.cache.Set(ctx, key, v); err != nil {
		return 0, fmt.Errorf("ethical cache store: %w", err)
	}
	return v, nil
}

// Clear empties the cache.
func (c *Cached) Clear(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// Cache returns the underlying cache.
func (c *Cached) Cache() cache.Cache {
	return c.cache
}
