//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package inmemory provides an in-memory storage implementation for result sets.
package inmemory

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
)

var _ evalresult.Manager = (*manager)(nil)

type manager struct {
	mu      sync.RWMutex
	results map[string]*evalresult.ResultSet
}

// New creates an in-memory result set manager.
func New() evalresult.Manager {
	return &manager{results: make(map[string]*evalresult.ResultSet)}
}

// Save stores a copy of rs.
func (m *manager) Save(_ context.Context, rs *evalresult.ResultSet) (string, error) {
	if rs == nil {
		return "", evalresult.ErrNilResultSet
	}
	c := rs.Clone()
	if c.ID == "" {
		c.ID = evalresult.NewID()
	}
	if c.Name == "" {
		c.Name = c.ID
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[c.ID] = c
	return c.ID, nil
}

// Get returns a copy of the stored result set.
func (m *manager) Get(_ context.Context, id string) (*evalresult.ResultSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rs, ok := m.results[id]
	if !ok {
		return nil, fmt.Errorf("result set %s not found: %w", id, os.ErrNotExist)
	}
	return rs.Clone(), nil
}

// List returns the stored IDs, newest first.
func (m *manager) List(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sets := make([]*evalresult.ResultSet, 0, len(m.results))
	for _, rs := range m.results {
		sets = append(sets, rs)
	}
	sort.Slice(sets, func(i, j int) bool {
		if !sets[i].CreatedAt.Equal(sets[j].CreatedAt) {
			return sets[i].CreatedAt.After(sets[j].CreatedAt)
		}
		return sets[i].ID < sets[j].ID
	})
	ids := make([]string, len(sets))
	for i, rs := range sets {
		ids[i] = rs.ID
	}
	return ids, nil
}

// Close implements evalresult.Manager.
func (m *manager) Close() error { return nil }
