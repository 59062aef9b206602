//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"time"

	"trpc.group/trpc-go/trpc-response-eval-go/cache"
	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/syllable"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/record"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/ethical"
)

const defaultParallelism = 1

type options struct {
	parallelism       int
	skipFailed        bool
	humanTag          string
	registry          *lexicon.Registry
	cache             cache.Cache
	emotion           classifier.Emotion
	ethical           ethical.Scorer
	ethicalClassifier classifier.Binary
	classifierTimeout time.Duration
	syllables         *syllable.Dictionary
	resultManager     evalresult.Manager
	scorers           map[string]scorer.Scorer
}

func newOptions(opt ...Option) *options {
	opts := &options{
		parallelism: defaultParallelism,
		humanTag:    record.DefaultHumanTag,
		scorers:     make(map[string]scorer.Scorer),
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the Evaluator.
type Option func(*options)

// WithParallelism sets how many candidates are scored concurrently.
// The default is 1, which scores candidates serially.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithSkipFailedCandidates keeps the rows of successful candidates when some
// candidates fail. The aggregated failures are still returned.
func WithSkipFailedCandidates(skip bool) Option {
	return func(o *options) {
		o.skipFailed = skip
	}
}

// WithHumanTag sets the platform tag of the reference record.
func WithHumanTag(tag string) Option {
	return func(o *options) {
		o.humanTag = tag
	}
}

// WithRegistry sets the lexicon registry shared by the built-in scorers.
func WithRegistry(reg *lexicon.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithCache sets the ethical alignment cache. The default is in-memory.
func WithCache(c cache.Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

// WithEmotionClassifier sets the classifier behind sentiment alignment.
func WithEmotionClassifier(c classifier.Emotion) Option {
	return func(o *options) {
		o.emotion = c
	}
}

// WithEthicalScorer replaces the rule-based ethical scorer. The scorer is
// still memoized by the ethical cache.
func WithEthicalScorer(s ethical.Scorer) Option {
	return func(o *options) {
		o.ethical = s
	}
}

// WithEthicalClassifier scores ethical alignment with a binary classifier
// instead of the rule set. Calls are bounded by the classifier timeout and
// memoized by the ethical cache. WithEthicalScorer takes precedence.
func WithEthicalClassifier(c classifier.Binary) Option {
	return func(o *options) {
		o.ethicalClassifier = c
	}
}

// WithClassifierTimeout bounds every emotion and ethical classifier call.
func WithClassifierTimeout(d time.Duration) Option {
	return func(o *options) {
		o.classifierTimeout = d
	}
}

// WithSyllableDictionary replaces the embedded common-word pronouncing
// dictionary used by the complexity scorer.
func WithSyllableDictionary(d *syllable.Dictionary) Option {
	return func(o *options) {
		o.syllables = d
	}
}

// WithResultManager persists result sets built by EvaluateResultSet.
func WithResultManager(m evalresult.Manager) Option {
	return func(o *options) {
		o.resultManager = m
	}
}

// WithScorer replaces the scorer of the named dimension.
func WithScorer(name string, s scorer.Scorer) Option {
	return func(o *options) {
		o.scorers[name] = s
	}
}
