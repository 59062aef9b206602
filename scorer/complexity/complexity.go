//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package complexity scores the reading complexity of a candidate with a
// modified Flesch reading ease composite.
package complexity

import (
	"context"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/sentence"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/syllable"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/wordtok"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

var _ scorer.CandidateScorer = (*Scorer)(nil)

type options struct {
	dict    *syllable.Dictionary
	unknown int
}

// Option configures the complexity scorer.
type Option func(*options)

// WithDictionary replaces the embedded pronunciation dictionary.
func WithDictionary(d *syllable.Dictionary) Option {
	return func(o *options) { o.dict = d }
}

// WithUnknownSyllables sets the syllable count of words missing from the
// dictionary. The default is 0.
func WithUnknownSyllables(n int) Option {
	return func(o *options) { o.unknown = n }
}

// Stats are the text statistics behind a complexity score.
type Stats struct {
	Sentences int
	Words     int
	Syllables int
	// AvgSentenceLength is words per sentence.
	AvgSentenceLength float64
	// Readability is the modified reading ease index.
	Readability float64
	Score       float64
}

// Scorer computes the complexity composite.
type Scorer struct {
	coef    lexicon.Readability
	dict    *syllable.Dictionary
	unknown int
}

// New creates a complexity scorer. A nil registry uses lexicon.Default.
func New(reg *lexicon.Registry, opts ...Option) *Scorer {
	if reg == nil {
		reg = lexicon.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.dict == nil {
		o.dict = syllable.Default()
	}
	return &Scorer{coef: reg.Readability, dict: o.dict, unknown: o.unknown}
}

// Score implements scorer.CandidateScorer.
func (s *Scorer) Score(ctx context.Context, candidate string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	st, err := s.Measure(candidate)
	if err != nil {
		return 0, err
	}
	return st.Score, nil
}

// Measure computes the statistics and score of text.
func (s *Scorer) Measure(text string) (Stats, error) {
	sents, err := sentence.Split(text)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Sentences: len(sents)}
	for _, sent := range sents {
		for _, tok := range wordtok.TokenizeSentence(sent) {
			st.Words++
			st.Syllables += s.dict.Count(tok, s.unknown)
		}
	}
	if st.Sentences > 0 {
		st.AvgSentenceLength = float64(st.Words) / float64(st.Sentences)
	}
	if st.Words > 0 && st.Sentences > 0 {
		c := s.coef
		st.Readability = c.Base - c.SentenceWeight*st.AvgSentenceLength -
			c.SyllableWeight*float64(st.Syllables)/float64(st.Words)
	}
	st.Score = scorer.Round((st.AvgSentenceLength*s.coef.SentenceComplexityWeight + st.Readability) / 2)
	return st, nil
}
