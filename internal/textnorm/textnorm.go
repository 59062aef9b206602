//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package textnorm normalizes text for matching and fingerprinting.
package textnorm

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize applies NFKC, drops control characters other than newline and
// tab, and trims surrounding whitespace.
func Normalize(text string) string {
	text = norm.NFKC.String(text)
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// Lower normalizes text and lower-cases it.
func Lower(text string) string {
	// A Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(Normalize(text))
}

// Fold normalizes text and applies Unicode case folding.
func Fold(text string) string {
	return cases.Fold().String(Normalize(text))
}

// Fingerprint returns a stable hash of the normalized text. Texts differing
// only in surrounding whitespace or Unicode compatibility forms share a
// fingerprint.
func Fingerprint(text string) string {
	return strconv.FormatUint(xxhash.Sum64String(Normalize(text)), 16)
}
