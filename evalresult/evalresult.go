//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package evalresult provides the result of an evaluation run and the
// interface used to persist it.
package evalresult

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"trpc.group/trpc-go/trpc-response-eval-go/record"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

// Row holds the six dimension scores of one candidate.
type Row struct {
	// Responder is the platform of the candidate record.
	Responder string `json:"responder"`
	// Response is the candidate text.
	Response           string  `json:"response"`
	LexicalOverlap     float64 `json:"lexicalOverlap"`
	SemanticAlignment  float64 `json:"semanticAlignment"`
	EthicalAlignment   float64 `json:"ethicalAlignment"`
	SentimentAlignment float64 `json:"sentimentAlignment"`
	Inclusivity        float64 `json:"inclusivity"`
	Complexity         float64 `json:"complexity"`
}

// Score returns the score of the named dimension.
func (r *Row) Score(name string) (float64, bool) {
	p := r.field(name)
	if p == nil {
		return 0, false
	}
	return *p, true
}

// SetScore sets the score of the named dimension.
func (r *Row) SetScore(name string, v float64) error {
	p := r.field(name)
	if p == nil {
		return fmt.Errorf("unknown dimension %q", name)
	}
	*p = v
	return nil
}

func (r *Row) field(name string) *float64 {
	switch name {
	case scorer.NameLexicalOverlap:
		return &r.LexicalOverlap
	case scorer.NameSemanticAlignment:
		return &r.SemanticAlignment
	case scorer.NameEthicalAlignment:
		return &r.EthicalAlignment
	case scorer.NameSentimentAlignment:
		return &r.SentimentAlignment
	case scorer.NameInclusivity:
		return &r.Inclusivity
	case scorer.NameComplexity:
		return &r.Complexity
	}
	return nil
}

// ResultSet is the outcome of one evaluation run.
type ResultSet struct {
	// ID uniquely identifies this result set.
	ID string `json:"id,omitempty"`
	// Name is a human readable label. It defaults to the ID.
	Name string `json:"name,omitempty"`
	// RegistryVersion is the lexicon registry version used for scoring.
	RegistryVersion string            `json:"registryVersion,omitempty"`
	Reference       record.TextRecord `json:"reference"`
	Rows            []Row             `json:"rows"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// Clone returns a deep copy of rs.
func (rs *ResultSet) Clone() *ResultSet {
	if rs == nil {
		return nil
	}
	c := *rs
	c.Rows = append([]Row(nil), rs.Rows...)
	return &c
}

// NewID returns a fresh result set ID.
func NewID() string {
	return uuid.New().String()
}

// ErrNilResultSet is returned when saving a nil result set.
var ErrNilResultSet = errors.New("result set is nil")

// Manager defines the interface for managing result sets.
type Manager interface {
	// Save stores a result set and returns its ID, generating one when empty.
	Save(ctx context.Context, rs *ResultSet) (string, error)
	// Get retrieves a result set by ID. Missing IDs wrap os.ErrNotExist.
	Get(ctx context.Context, id string) (*ResultSet, error)
	// List returns the stored IDs, newest first.
	List(ctx context.Context) ([]string, error)
	// Close releases the backend.
	Close() error
}
