//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package meteor implements the METEOR alignment metric for a single reference.
//
// Words are aligned in three stages: exact surface match, Porter stem match
// and synonym match. Each stage walks the hypothesis from last to first and,
// for each hypothesis word, takes the last unmatched reference word that
// matches it. The aligned pairs are then sorted by hypothesis position and
// grouped into chunks of adjacent pairs to derive the fragmentation penalty.
package meteor

import (
	"math"
	"sort"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/stem"
)

// Default METEOR coefficients.
const (
	DefaultAlpha = 0.9
	DefaultBeta  = 3.0
	DefaultGamma = 0.5
)

// Synonyms returns the synonyms of a word. Implementations must be safe for
// concurrent use.
type Synonyms interface {
	Synonyms(word string) []string
}

// SynonymTable is a symmetric-by-construction synonym lookup.
type SynonymTable map[string][]string

// NewSynonymTable builds a table from synonym groups. Every word of a group is
// a synonym of every other word of that group.
func NewSynonymTable(groups [][]string) SynonymTable {
	t := make(SynonymTable)
	for _, group := range groups {
		for _, w := range group {
			for _, other := range group {
				if other != w {
					t[w] = append(t[w], other)
				}
			}
		}
	}
	return t
}

// Synonyms implements Synonyms.
func (t SynonymTable) Synonyms(word string) []string {
	return t[word]
}

type options struct {
	alpha    float64
	beta     float64
	gamma    float64
	synonyms Synonyms
}

// Option configures Score.
type Option func(*options)

// WithAlpha sets the precision/recall balance.
func WithAlpha(alpha float64) Option {
	return func(o *options) { o.alpha = alpha }
}

// WithBeta sets the fragmentation penalty exponent.
func WithBeta(beta float64) Option {
	return func(o *options) { o.beta = beta }
}

// WithGamma sets the fragmentation penalty weight.
func WithGamma(gamma float64) Option {
	return func(o *options) { o.gamma = gamma }
}

// WithSynonyms sets the synonym source used by the third stage.
func WithSynonyms(s Synonyms) Option {
	return func(o *options) { o.synonyms = s }
}

// word is a token with its original position.
type word struct {
	pos  int
	text string
}

// match pairs a hypothesis position with a reference position.
type match struct {
	hyp int
	ref int
}

// Score returns the METEOR score of hypothesis against reference. Tokens are
// compared as given, so callers case-fold beforehand. Zero matches yield 0.
func Score(reference, hypothesis []string, opt ...Option) float64 {
	opts := &options{alpha: DefaultAlpha, beta: DefaultBeta, gamma: DefaultGamma}
	for _, o := range opt {
		o(opts)
	}
	hyp := enumerate(hypothesis)
	ref := enumerate(reference)

	var matches []match
	var m []match
	m, hyp, ref = align(hyp, ref, func(h, r string) bool { return h == r })
	matches = append(matches, m...)
	m, hyp, ref = alignStems(hyp, ref)
	matches = append(matches, m...)
	if opts.synonyms != nil {
		m, _, _ = align(hyp, ref, synonymMatcher(opts.synonyms))
		matches = append(matches, m...)
	}
	if len(matches) == 0 {
		return 0
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].hyp != matches[j].hyp {
			return matches[i].hyp < matches[j].hyp
		}
		return matches[i].ref < matches[j].ref
	})

	n := float64(len(matches))
	precision := n / float64(len(hypothesis))
	recall := n / float64(len(reference))
	fmean := precision * recall / (opts.alpha*precision + (1-opts.alpha)*recall)
	fragmentation := float64(countChunks(matches)) / n
	penalty := opts.gamma * math.Pow(fragmentation, opts.beta)
	return (1 - penalty) * fmean
}

func enumerate(tokens []string) []word {
	out := make([]word, len(tokens))
	for i, t := range tokens {
		out[i] = word{pos: i, text: t}
	}
	return out
}

// align greedily pairs words and returns the matches plus the unmatched
// remainder of both sides.
func align(hyp, ref []word, same func(h, r string) bool) ([]match, []word, []word) {
	hyp = append([]word(nil), hyp...)
	ref = append([]word(nil), ref...)
	var matches []match
	for i := len(hyp) - 1; i >= 0; i-- {
		for j := len(ref) - 1; j >= 0; j-- {
			if !same(hyp[i].text, ref[j].text) {
				continue
			}
			matches = append(matches, match{hyp: hyp[i].pos, ref: ref[j].pos})
			hyp = append(hyp[:i], hyp[i+1:]...)
			ref = append(ref[:j], ref[j+1:]...)
			break
		}
	}
	return matches, hyp, ref
}

// alignStems aligns on Porter stems and returns the remainder with the
// original surface forms restored.
func alignStems(hyp, ref []word) ([]match, []word, []word) {
	stemmed := func(ws []word) []word {
		out := make([]word, len(ws))
		for i, w := range ws {
			out[i] = word{pos: w.pos, text: stem.Stem(w.text)}
		}
		return out
	}
	matches, _, _ := align(stemmed(hyp), stemmed(ref), func(h, r string) bool { return h == r })
	return matches, without(hyp, matches, true), without(ref, matches, false)
}

func without(ws []word, matches []match, hypSide bool) []word {
	used := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		if hypSide {
			used[m.hyp] = struct{}{}
		} else {
			used[m.ref] = struct{}{}
		}
	}
	out := make([]word, 0, len(ws))
	for _, w := range ws {
		if _, ok := used[w.pos]; !ok {
			out = append(out, w)
		}
	}
	return out
}

func synonymMatcher(s Synonyms) func(h, r string) bool {
	return func(h, r string) bool {
		if h == r {
			return true
		}
		for _, syn := range s.Synonyms(h) {
			if syn == r {
				return true
			}
		}
		return false
	}
}

// countChunks counts runs of matches adjacent in both hypothesis and reference.
func countChunks(matches []match) int {
	chunks := 1
	for i := 0; i+1 < len(matches); i++ {
		if matches[i+1].hyp == matches[i].hyp+1 && matches[i+1].ref == matches[i].ref+1 {
			continue
		}
		chunks++
	}
	return chunks
}
