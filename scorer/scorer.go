//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package scorer defines the scorer capability shared by every evaluation
// dimension.
package scorer

import (
	"context"
	"math"
)

// Canonical dimension names, in output column order.
const (
	NameLexicalOverlap     = "lexical_overlap"
	NameSemanticAlignment  = "semantic_alignment"
	NameEthicalAlignment   = "ethical_alignment"
	NameSentimentAlignment = "sentiment_alignment"
	NameInclusivity        = "inclusivity"
	NameComplexity         = "complexity"
)

// Names returns the canonical dimension names in output column order.
func Names() []string {
	return []string{
		NameLexicalOverlap,
		NameSemanticAlignment,
		NameEthicalAlignment,
		NameSentimentAlignment,
		NameInclusivity,
		NameComplexity,
	}
}

// Scorer scores a candidate response against a reference response.
type Scorer interface {
	Score(ctx context.Context, reference, candidate string) (float64, error)
}

// CandidateScorer scores a candidate response on its own.
type CandidateScorer interface {
	Score(ctx context.Context, candidate string) (float64, error)
}

// Func adapts a function to Scorer.
type Func func(ctx context.Context, reference, candidate string) (float64, error)

// Score implements Scorer.
func (f Func) Score(ctx context.Context, reference, candidate string) (float64, error) {
	return f(ctx, reference, candidate)
}

// IgnoreReference adapts a CandidateScorer to Scorer.
func IgnoreReference(s CandidateScorer) Scorer {
	return Func(func(ctx context.Context, _, candidate string) (float64, error) {
		return s.Score(ctx, candidate)
	})
}

// Round rounds v to two decimals, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
