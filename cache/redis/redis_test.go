//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "redis://localhost:6379/15"

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	prefix := fmt.Sprintf("respeval:test:%d:", time.Now().UnixNano())
	c, err := New(testURL, WithPrefix(prefix), WithTTL(time.Minute))
	if err != nil {
		t.Skip("Redis not available:", err)
	}
	t.Cleanup(func() {
		_ = c.Clear(context.Background())
		_ = c.Close()
	})
	return c
}

// TestNew_ConnectionFailure verifies unreachable servers are reported.
func TestNew_ConnectionFailure(t *testing.T) {
	_, err := New("redis://localhost:9999")
	require.Error(t, err)
}

// TestNew_InvalidURL verifies malformed URLs are rejected.
func TestNew_InvalidURL(t *testing.T) {
	_, err := New("://bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing redis URL")
}

// TestCache_FirstWriterWins verifies SETNX semantics.
func TestCache_FirstWriterWins(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", 0.42))
	require.NoError(t, c.Set(ctx, "k", 0.9))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.42, v)
}

// TestCache_Clear verifies Clear removes prefixed keys only.
func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)
	other := NewWithClient(c.client, WithPrefix(c.prefix+"other:"))

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 0))
	require.NoError(t, c.Clear(ctx))

	_, ok, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, other.Set(ctx, "x", 0.5))
	_, ok, err = other.Get(ctx, "x")
	require.NoError(t, err)
	assert.True(t, ok)
}
