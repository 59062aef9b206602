//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package rouge

import (
	"regexp"
	"strings"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/stem"
)

var (
	// nonAlphaNumRE matches runs of characters that are not lowercase ASCII letters or digits.
	nonAlphaNumRE = regexp.MustCompile(`[^a-z0-9]+`)
	// validTokenRE matches a token consisting only of lowercase ASCII letters and digits.
	validTokenRE = regexp.MustCompile(`^[a-z0-9]+$`)
)

// minStemLength is the shortest token the built-in tokenizer stems.
const minStemLength = 4

// Tokenizer tokenizes text into a list of tokens.
type Tokenizer interface {
	// Tokenize splits input text into tokens.
	Tokenize(text string) []string
}

// tokenizer mirrors the google-research rouge tokenizer.
type tokenizer struct {
	useStemmer bool
}

// NewTokenizer returns the built-in tokenizer, optionally stemming tokens.
func NewTokenizer(useStemmer bool) Tokenizer {
	return &tokenizer{useStemmer: useStemmer}
}

// Tokenize lowercases, replaces punctuation with spaces, splits on whitespace
// and stems tokens of at least four characters when stemming is enabled.
func (t *tokenizer) Tokenize(text string) []string {
	text = nonAlphaNumRE.ReplaceAllString(strings.ToLower(text), " ")
	parts := strings.Fields(text)
	tokens := make([]string, 0, len(parts))
	for _, token := range parts {
		if t.useStemmer && len(token) >= minStemLength {
			token = stem.Stem(token)
		}
		if token == "" || !validTokenRE.MatchString(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
