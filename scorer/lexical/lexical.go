//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package lexical scores n-gram overlap between a reference and a candidate
// with stemmed ROUGE-1, ROUGE-2 and ROUGE-L.
package lexical

import (
	"context"
	"strings"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/rouge"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

var _ scorer.Scorer = (*Scorer)(nil)

// Scorer blends precision and recall of each ROUGE granularity and combines
// the granularities with the registry weights.
type Scorer struct {
	overlap lexicon.Overlap
}

// New creates a lexical overlap scorer. A nil registry uses lexicon.Default.
func New(reg *lexicon.Registry) *Scorer {
	if reg == nil {
		reg = lexicon.Default()
	}
	return &Scorer{overlap: reg.Overlap}
}

// Score implements scorer.Scorer. Blank input scores 0.
func (s *Scorer) Score(ctx context.Context, reference, candidate string) (float64, error) {
	if strings.TrimSpace(reference) == "" || strings.TrimSpace(candidate) == "" {
		return 0, nil
	}
	scores, err := rouge.Compute(ctx, reference, candidate,
		rouge.WithRougeTypes(rouge.TypeUnigram, rouge.TypeBigram, rouge.TypeLCS),
		rouge.WithStemmer(true),
	)
	if err != nil {
		return 0, err
	}
	o := s.overlap
	v := o.Unigram.Weight*scores[rouge.TypeUnigram].Blend(o.Unigram.Precision) +
		o.Bigram.Weight*scores[rouge.TypeBigram].Blend(o.Bigram.Precision) +
		o.LCS.Weight*scores[rouge.TypeLCS].Blend(o.LCS.Precision)
	return scorer.Round(scorer.Clamp(v, 0, 1)), nil
}
