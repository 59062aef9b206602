//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-process cache.Cache.
package inmemory

import (
	"context"
	"sync"

	"trpc.group/trpc-go/trpc-response-eval-go/cache"
)

var _ cache.Cache = (*Cache)(nil)

// Cache is a mutex guarded map.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]float64
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]float64)}
}

// Get implements cache.Cache.
func (c *Cache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set implements cache.Cache.
func (c *Cache) Set(_ context.Context, key string, score float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = score
	}
	return nil
}

// Clear implements cache.Cache.
func (c *Cache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]float64)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
