//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package inclusivity scores affirming against stigmatizing vocabulary.
package inclusivity

import (
	"context"
	"math"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/textnorm"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/wordtok"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

var _ scorer.CandidateScorer = (*Scorer)(nil)

// Assessment is the breakdown of an inclusivity score.
type Assessment struct {
	Positive float64
	Penalty  float64
	Tokens   int
	Score    float64
}

// Scorer awards tier points for inclusive terms and subtracts tier points
// for stigmatizing terms. The score is the net points per token plus a
// volume bonus on the awarded points, and is not bounded above.
type Scorer struct {
	cfg lexicon.Inclusivity
}

// New creates an inclusivity scorer. A nil registry uses lexicon.Default.
func New(reg *lexicon.Registry) *Scorer {
	if reg == nil {
		reg = lexicon.Default()
	}
	return &Scorer{cfg: reg.Inclusivity}
}

// Score implements scorer.CandidateScorer.
func (s *Scorer) Score(ctx context.Context, candidate string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a, err := s.Assess(candidate)
	if err != nil {
		return 0, err
	}
	return a.Score, nil
}

// Assess computes the score of text with its breakdown. Every token earns
// the points of the first tier containing it. Multi-word lexicon terms never
// equal a single token and so earn nothing.
func (s *Scorer) Assess(text string) (Assessment, error) {
	clean := textnorm.Lower(text)
	tokens, err := wordtok.Tokenize(clean)
	if err != nil {
		return Assessment{}, err
	}
	a := Assessment{Tokens: len(tokens)}
	if a.Tokens == 0 {
		return a, nil
	}
	for _, tok := range tokens {
		if tier, ok := s.cfg.Awards.Lookup(tok); ok {
			a.Positive += tier.Points
		}
		if tier, ok := s.cfg.Penalties.Lookup(tok); ok {
			a.Penalty += tier.Points
		}
	}

	v := (a.Positive - a.Penalty) / float64(a.Tokens)
	if s.cfg.VolumeDivisor > 0 {
		v += a.Positive / s.cfg.VolumeDivisor
	}
	a.Score = scorer.Round(math.Max(0, v))
	return a, nil
}
