//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package evalresult

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

// TestRow_SetScore verifies every canonical dimension is addressable.
func TestRow_SetScore(t *testing.T) {
	var r Row
	for i, name := range scorer.Names() {
		require.NoError(t, r.SetScore(name, float64(i+1)))
	}
	assert.Equal(t, Row{
		LexicalOverlap:     1,
		SemanticAlignment:  2,
		EthicalAlignment:   3,
		SentimentAlignment: 4,
		Inclusivity:        5,
		Complexity:         6,
	}, r)
	for i, name := range scorer.Names() {
		v, ok := r.Score(name)
		assert.True(t, ok)
		assert.Equal(t, float64(i+1), v)
	}

	assert.Error(t, r.SetScore("unknown", 1))
	_, ok := r.Score("unknown")
	assert.False(t, ok)
}

// TestResultSet_Clone verifies clones do not share rows.
func TestResultSet_Clone(t *testing.T) {
	rs := &ResultSet{ID: "id", Rows: []Row{{Responder: "a"}}}
	c := rs.Clone()
	c.Rows[0].Responder = "b"
	assert.Equal(t, "a", rs.Rows[0].Responder)
	assert.Nil(t, (*ResultSet)(nil).Clone())
}

// TestNewID verifies IDs are UUIDs.
func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
