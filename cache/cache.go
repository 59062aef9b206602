//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package cache defines the score cache keyed by text fingerprint.
package cache

import "context"

// Cache maps fingerprints to previously computed scores. Implementations must
// be safe for concurrent use. Set keeps the first value stored for a key;
// concurrent writers of one fingerprint compute the same score, so losing a
// duplicate insert is harmless.
type Cache interface {
	// Get returns the score stored for key and whether it exists.
	Get(ctx context.Context, key string) (float64, bool, error)
	// Set stores score for key unless a score is already stored.
	Set(ctx context.Context, key string, score float64) error
	// Clear removes every entry.
	Clear(ctx context.Context) error
}
