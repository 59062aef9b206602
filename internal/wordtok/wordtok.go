//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package wordtok implements Penn Treebank style word tokenization.
//
// Text is first split into sentences with the Punkt model, then each sentence
// has punctuation, brackets and quotes separated from words and English
// contractions split off ("don't" becomes "do" and "n't"). Hyphenated words
// stay whole.
package wordtok

import (
	"regexp"
	"strings"

	"trpc.group/trpc-go/trpc-response-eval-go/internal/sentence"
)

type substitution struct {
	re   *regexp.Regexp
	repl string
}

func sub(pattern, repl string) substitution {
	return substitution{re: regexp.MustCompile(pattern), repl: repl}
}

var startingQuotes = []substitution{
	sub(`([«“‘„]|[`+"`"+`]+)`, " ${1} "),
	sub(`^"`, "``"),
	sub(`(`+"``"+`)`, " ${1} "),
	sub(`([ (\[{<])("|'{2})`, "${1} `` "),
}

var punctuation = []substitution{
	sub(`([^.])(\.)([\])}>"']*)\s*$`, "${1} ${2} ${3} "),
	sub(`([:,])([^\d])`, " ${1} ${2}"),
	sub(`([:,])$`, " ${1} "),
	sub(`\.{2,}`, " ${0} "),
	sub(`[;@#$%&]`, " ${0} "),
	sub(`[?!]`, " ${0} "),
	sub(`([^'])' `, "${1} ' "),
	sub(`[*]`, " ${0} "),
}

var brackets = sub(`[\]\[(){}<>]`, " ${0} ")

var doubleDashes = sub(`--`, " -- ")

var endingQuotes = []substitution{
	sub(`([»”’])`, " ${1} "),
	sub(`''`, " '' "),
	sub(`"`, " '' "),
	sub(`([^' ])('[sS]|'[mM]|'[dD]|') `, "${1} ${2} "),
	sub(`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `, "${1} ${2} "),
}

var contractions = []substitution{
	sub(`(?i)\b(can)(not)\b`, " ${1} ${2} "),
	sub(`(?i)\b(d)('ye)\b`, " ${1} ${2} "),
	sub(`(?i)\b(gim)(me)\b`, " ${1} ${2} "),
	sub(`(?i)\b(gon)(na)\b`, " ${1} ${2} "),
	sub(`(?i)\b(got)(ta)\b`, " ${1} ${2} "),
	sub(`(?i)\b(lem)(me)\b`, " ${1} ${2} "),
	sub(`(?i)\b(more)('n)\b`, " ${1} ${2} "),
	sub(`(?i)\b(wan)(na)\s`, " ${1} ${2} "),
	sub(`(?i) ('t)(is)\b`, " ${1} ${2} "),
	sub(`(?i) ('t)(was)\b`, " ${1} ${2} "),
}

func apply(text string, subs []substitution) string {
	for _, s := range subs {
		text = s.re.ReplaceAllString(text, s.repl)
	}
	return text
}

// TokenizeSentence tokenizes a single sentence.
func TokenizeSentence(text string) []string {
	text = apply(text, startingQuotes)
	text = apply(text, punctuation)
	text = brackets.re.ReplaceAllString(text, brackets.repl)
	text = doubleDashes.re.ReplaceAllString(text, doubleDashes.repl)
	text = apply(" "+text+" ", endingQuotes)
	text = apply(text, contractions)
	return strings.Fields(text)
}

// Tokenize splits text into sentences and tokenizes each one.
func Tokenize(text string) ([]string, error) {
	sents, err := sentence.Split(text)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, s := range sents {
		tokens = append(tokens, TokenizeSentence(s)...)
	}
	return tokens, nil
}

// Lower tokenizes the lower-cased text.
func Lower(text string) ([]string, error) {
	return Tokenize(strings.ToLower(text))
}
