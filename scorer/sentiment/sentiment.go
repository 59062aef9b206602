//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package sentiment compares the emotional profile of a candidate with that
// of the reference.
package sentiment

import (
	"context"
	"errors"
	"math"
	"time"

	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/textnorm"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

var _ scorer.Scorer = (*Scorer)(nil)

type options struct {
	timeout time.Duration
}

// Option configures the sentiment scorer.
type Option func(*options)

// WithTimeout bounds each classifier call.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// Scorer computes the cosine similarity of weighted emotion vectors.
type Scorer struct {
	clf     classifier.Emotion
	weights lexicon.EmotionWeights
}

// New creates a sentiment alignment scorer. A nil registry uses
// lexicon.Default.
func New(clf classifier.Emotion, reg *lexicon.Registry, opts ...Option) *Scorer {
	if reg == nil {
		reg = lexicon.Default()
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return &Scorer{
		clf:     classifier.EmotionWithTimeout(clf, o.timeout),
		weights: reg.Emotions,
	}
}

// Score implements scorer.Scorer. A zero vector on either side scores 0.
func (s *Scorer) Score(ctx context.Context, reference, candidate string) (float64, error) {
	ref, err := s.Vector(ctx, reference)
	if err != nil {
		return 0, err
	}
	cand, err := s.Vector(ctx, candidate)
	if err != nil {
		return 0, err
	}
	return scorer.Round(scorer.Clamp(Cosine(ref, cand), 0, 1)), nil
}

// Vector classifies text and returns the weighted probabilities of the
// relevant emotions in registry order. Blank text is the zero vector and is
// not sent to the classifier.
func (s *Scorer) Vector(ctx context.Context, text string) ([]float64, error) {
	vec := make([]float64, len(s.weights.Relevant))
	text = textnorm.Normalize(text)
	if text == "" {
		return vec, nil
	}
	probs, err := s.clf.Classify(ctx, text)
	if err != nil {
		var cerr *classifier.Error
		if errors.As(err, &cerr) {
			return nil, err
		}
		return nil, classifier.Wrap(scorer.NameSentimentAlignment, err)
	}
	folded := make(map[string]float64, len(probs))
	for label, p := range probs {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		key := textnorm.Fold(label)
		if cur, ok := folded[key]; !ok || p > cur {
			folded[key] = p
		}
	}
	for i, emotion := range s.weights.Relevant {
		vec[i] = folded[emotion] * s.weights.Weight(emotion)
	}
	return vec, nil
}

// Cosine returns the cosine similarity of a and b, or 0 when either has zero
// magnitude.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range min(len(a), len(b)) {
		dot += a[i] * b[i]
	}
	for _, v := range a {
		na += v * v
	}
	for _, v := range b {
		nb += v * v
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
