//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package semantic scores how well a candidate aligns with a reference using
// METEOR over case-folded Treebank tokens.
package semantic

import (
	"context"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/meteor"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/textnorm"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/wordtok"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

var _ scorer.Scorer = (*Scorer)(nil)

type options struct {
	synonyms meteor.Synonyms
}

// Option configures the semantic scorer.
type Option func(*options)

// WithSynonyms replaces the registry synonym table.
func WithSynonyms(s meteor.Synonyms) Option {
	return func(o *options) { o.synonyms = s }
}

// Scorer computes METEOR with the registry coefficients.
type Scorer struct {
	meteorOpts []meteor.Option
}

// New creates a semantic alignment scorer. A nil registry uses lexicon.Default.
func New(reg *lexicon.Registry, opts ...Option) *Scorer {
	if reg == nil {
		reg = lexicon.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.synonyms == nil {
		o.synonyms = meteor.NewSynonymTable(reg.Alignment.Synonyms)
	}
	a := reg.Alignment
	return &Scorer{meteorOpts: []meteor.Option{
		meteor.WithAlpha(a.Alpha),
		meteor.WithBeta(a.Beta),
		meteor.WithGamma(a.Gamma),
		meteor.WithSynonyms(o.synonyms),
	}}
}

// Score implements scorer.Scorer.
func (s *Scorer) Score(ctx context.Context, reference, candidate string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	ref, err := wordtok.Tokenize(textnorm.Lower(reference))
	if err != nil {
		return 0, err
	}
	hyp, err := wordtok.Tokenize(textnorm.Lower(candidate))
	if err != nil {
		return 0, err
	}
	return scorer.Round(meteor.Score(ref, hyp, s.meteorOpts...)), nil
}
