//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package lexicon holds the term sets, weight tables and coefficients that
// calibrate response scoring.
//
// All values are collected in a Registry. Default returns the calibrated
// defaults, and Load applies a YAML override document on top of them so a
// deployment can recalibrate a single table without restating the rest.
// A Registry is never mutated after construction and is shared read-only by
// every scorer.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon is a named, immutable set of lower-cased terms. Terms containing a
// space are phrases, everything else is a single token.
type Lexicon struct {
	name     string
	terms    map[string]struct{}
	phrases  []string
	patterns []*regexp.Regexp
}

// New builds a lexicon from terms. Terms are trimmed and lower-cased, empty
// terms are dropped and duplicates collapse.
func New(name string, terms ...string) Lexicon {
	l := Lexicon{name: name, terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := l.terms[t]; ok {
			continue
		}
		l.terms[t] = struct{}{}
		if strings.Contains(t, " ") {
			l.phrases = append(l.phrases, t)
		}
	}
	sort.Strings(l.phrases)
	l.patterns = make([]*regexp.Regexp, len(l.phrases))
	for i, p := range l.phrases {
		l.patterns[i] = phrasePattern(p)
	}
	return l
}

// phrasePattern matches p only where it is not glued to a letter or digit,
// so "get over" does not match "get overwhelmed".
func phrasePattern(p string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\pL\pN])` + regexp.QuoteMeta(p) + `(?:$|[^\pL\pN])`)
}

// Name returns the lexicon name.
func (l Lexicon) Name() string { return l.name }

// Len returns the number of distinct terms.
func (l Lexicon) Len() int { return len(l.terms) }

// Contains reports whether term is in the lexicon. The lookup is exact, so
// callers pass lower-cased terms.
func (l Lexicon) Contains(term string) bool {
	_, ok := l.terms[term]
	return ok
}

// Phrases returns the multi-word terms in sorted order.
func (l Lexicon) Phrases() []string {
	return append([]string(nil), l.phrases...)
}

// Terms returns every term in sorted order.
func (l Lexicon) Terms() []string {
	out := make([]string, 0, len(l.terms))
	for t := range l.terms {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// MatchTokens returns the distinct terms present in tokens.
func (l Lexicon) MatchTokens(tokens map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	small, large := tokens, l.terms
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if _, ok := large[t]; ok {
			out[t] = struct{}{}
		}
	}
	return out
}

// MatchPhrases adds to matched every phrase that occurs in text on word
// boundaries and returns matched.
func (l Lexicon) MatchPhrases(text string, matched map[string]struct{}) map[string]struct{} {
	if matched == nil {
		matched = make(map[string]struct{})
	}
	for i, p := range l.phrases {
		if l.patterns[i].MatchString(text) {
			matched[p] = struct{}{}
		}
	}
	return matched
}

// Tier is a lexicon carrying a point value.
type Tier struct {
	Name   string
	Points float64
	Terms  Lexicon
}

// TieredLexicon is an ordered list of tiers. A term belongs to the first tier
// that contains it.
type TieredLexicon struct {
	tiers []Tier
}

// NewTiered builds a tiered lexicon; tiers are checked in the given order.
func NewTiered(tiers ...Tier) TieredLexicon {
	return TieredLexicon{tiers: append([]Tier(nil), tiers...)}
}

// Lookup returns the first tier containing term.
func (t TieredLexicon) Lookup(term string) (Tier, bool) {
	for _, tier := range t.tiers {
		if tier.Terms.Contains(term) {
			return tier, true
		}
	}
	return Tier{}, false
}

// Tiers returns the tiers in lookup order.
func (t TieredLexicon) Tiers() []Tier {
	return append([]Tier(nil), t.tiers...)
}
