//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package inmemory

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
)

// TestManagerSaveGetList verifies the round trip and copy semantics.
func TestManagerSaveGetList(t *testing.T) {
	ctx := context.Background()
	mgr := New()

	_, err := mgr.Save(ctx, nil)
	assert.ErrorIs(t, err, evalresult.ErrNilResultSet)

	generated, err := mgr.Save(ctx, &evalresult.ResultSet{
		Rows:      []evalresult.Row{{Responder: "A", LexicalOverlap: 0.4}},
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, generated)

	input := &evalresult.ResultSet{
		ID:        "manual-id",
		Rows:      []evalresult.Row{{Responder: "B"}},
		CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	id, err := mgr.Save(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "manual-id", id)
	input.Rows[0].Responder = "mutated"

	got, err := mgr.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Rows[0].Responder)
	assert.Equal(t, "manual-id", got.Name)
	got.Rows[0].Responder = "changed"
	fresh, err := mgr.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "B", fresh.Rows[0].Responder)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"manual-id", generated}, ids)
	assert.NoError(t, mgr.Close())
}

// TestManagerGet_NotFound verifies missing IDs wrap os.ErrNotExist.
func TestManagerGet_NotFound(t *testing.T) {
	_, err := New().Get(context.Background(), "unknown")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestManagerSave_DefaultsCreatedAt verifies a creation time is assigned.
func TestManagerSave_DefaultsCreatedAt(t *testing.T) {
	mgr := New()
	id, err := mgr.Save(context.Background(), &evalresult.ResultSet{})
	require.NoError(t, err)
	got, err := mgr.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
}
