//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package stem implements the Porter stemmer in its NLTK_EXTENSIONS mode.
//
// Both the lexical overlap scorer and the stem stage of the semantic alignment
// scorer rely on this stemmer, so stems agree across the two metrics.
package stem

import "strings"

// irregular maps irregular forms to their stems before any rule is applied.
var irregular = map[string]string{
	"sky":      "sky",
	"skies":    "sky",
	"dying":    "die",
	"lying":    "lie",
	"tying":    "tie",
	"news":     "news",
	"inning":   "inning",
	"innings":  "inning",
	"outing":   "outing",
	"outings":  "outing",
	"canning":  "canning",
	"cannings": "canning",
	"howe":     "howe",
	"proceed":  "proceed",
	"exceed":   "exceed",
	"succeed":  "succeed",
}

// Stem returns the Porter stem of an ASCII word. Words of two characters or
// fewer are returned lower-cased and otherwise untouched.
func Stem(word string) string {
	word = strings.ToLower(word)
	if len(word) <= 2 {
		return word
	}
	if base, ok := irregular[word]; ok {
		return base
	}
	var p porter
	for _, step := range []func(string) string{
		p.step1a, p.step1b, p.step1c, p.step2, p.step3, p.step4, p.step5a, p.step5b,
	} {
		word = step(word)
	}
	return word
}

// doubleConsonant is the rule suffix that matches any doubled final consonant.
const doubleConsonant = "*d"

// rule is a suffix replacement guarded by an optional condition on the stem.
type rule struct {
	suffix      string
	replacement string
	when        func(stem string) bool
}

type porter struct{}

func (p porter) consonant(w string, i int) bool {
	if i < 0 || i >= len(w) {
		return false
	}
	switch w[i] {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		return i == 0 || !p.consonant(w, i-1)
	}
	return true
}

func (p porter) hasVowel(w string) bool {
	for i := range len(w) {
		if !p.consonant(w, i) {
			return true
		}
	}
	return false
}

// measure counts vowel-consonant sequences, the m of [C](VC)^m[V].
func (p porter) measure(w string) int {
	m := 0
	sawVowel := false
	for i := range len(w) {
		if p.consonant(w, i) {
			if sawVowel {
				m++
			}
			sawVowel = false
			continue
		}
		sawVowel = true
	}
	return m
}

func (p porter) endsDouble(w string) bool {
	n := len(w)
	return n >= 2 && w[n-1] == w[n-2] && p.consonant(w, n-1)
}

// endsCVC reports a consonant-vowel-consonant ending whose last letter is not
// w, x or y. Two-letter vowel-consonant words also qualify.
func (p porter) endsCVC(w string) bool {
	n := len(w)
	if n >= 3 {
		last := w[n-1]
		if p.consonant(w, n-3) && !p.consonant(w, n-2) && p.consonant(w, n-1) &&
			last != 'w' && last != 'x' && last != 'y' {
			return true
		}
	}
	return n == 2 && !p.consonant(w, 0) && p.consonant(w, 1)
}

func (p porter) positive(stem string) bool { return p.measure(stem) > 0 }

func (p porter) aboveOne(stem string) bool { return p.measure(stem) > 1 }

// apply runs the first rule whose suffix matches. A matching rule whose
// condition fails stops the search and leaves the word unchanged.
func (p porter) apply(word string, rules []rule) string {
	for _, r := range rules {
		var stem string
		switch {
		case r.suffix == doubleConsonant:
			if !p.endsDouble(word) {
				continue
			}
			stem = word[:len(word)-2]
		case strings.HasSuffix(word, r.suffix):
			stem = word[:len(word)-len(r.suffix)]
		default:
			continue
		}
		if r.when == nil || r.when(stem) {
			return stem + r.replacement
		}
		return word
	}
	return word
}

func (p porter) step1a(word string) string {
	if len(word) == 4 && strings.HasSuffix(word, "ies") {
		return word[:1] + "ie"
	}
	return p.apply(word, []rule{
		{suffix: "sses", replacement: "ss"},
		{suffix: "ies", replacement: "i"},
		{suffix: "ss", replacement: "ss"},
		{suffix: "s"},
	})
}

func (p porter) step1b(word string) string {
	if strings.HasSuffix(word, "ied") {
		if len(word) == 4 {
			return word[:1] + "ie"
		}
		return word[:len(word)-3] + "i"
	}
	if strings.HasSuffix(word, "eed") {
		stem := word[:len(word)-3]
		if p.measure(stem) > 0 {
			return stem + "ee"
		}
		return word
	}

	stem, ok := "", false
	for _, suffix := range []string{"ed", "ing"} {
		if !strings.HasSuffix(word, suffix) {
			continue
		}
		if s := word[:len(word)-len(suffix)]; p.hasVowel(s) {
			stem, ok = s, true
			break
		}
	}
	if !ok {
		return word
	}
	last := stem[len(stem)-1]
	return p.apply(stem, []rule{
		{suffix: "at", replacement: "ate"},
		{suffix: "bl", replacement: "ble"},
		{suffix: "iz", replacement: "ize"},
		{
			suffix:      doubleConsonant,
			replacement: string(last),
			when: func(string) bool {
				return last != 'l' && last != 's' && last != 'z'
			},
		},
		{
			replacement: "e",
			when: func(s string) bool {
				return p.measure(s) == 1 && p.endsCVC(s)
			},
		},
	})
}

func (p porter) step1c(word string) string {
	return p.apply(word, []rule{{
		suffix:      "y",
		replacement: "i",
		when: func(s string) bool {
			return len(s) > 1 && p.consonant(s, len(s)-1)
		},
	}})
}

func (p porter) step2(word string) string {
	if strings.HasSuffix(word, "alli") && p.positive(word[:len(word)-4]) {
		return p.step2(word[:len(word)-4] + "al")
	}
	pos := p.positive
	return p.apply(word, []rule{
		{"ational", "ate", pos},
		{"tional", "tion", pos},
		{"enci", "ence", pos},
		{"anci", "ance", pos},
		{"izer", "ize", pos},
		{"bli", "ble", pos},
		{"alli", "al", pos},
		{"entli", "ent", pos},
		{"eli", "e", pos},
		{"ousli", "ous", pos},
		{"ization", "ize", pos},
		{"ation", "ate", pos},
		{"ator", "ate", pos},
		{"alism", "al", pos},
		{"iveness", "ive", pos},
		{"fulness", "ful", pos},
		{"ousness", "ous", pos},
		{"aliti", "al", pos},
		{"iviti", "ive", pos},
		{"biliti", "ble", pos},
		{"fulli", "ful", pos},
		// NLTK checks the measure with the trailing "l" of "logi" kept.
		{"logi", "log", func(string) bool { return p.positive(word[:len(word)-3]) }},
	})
}

func (p porter) step3(word string) string {
	pos := p.positive
	return p.apply(word, []rule{
		{"icate", "ic", pos},
		{"ative", "", pos},
		{"alize", "al", pos},
		{"iciti", "ic", pos},
		{"ical", "ic", pos},
		{"ful", "", pos},
		{"ness", "", pos},
	})
}

func (p porter) step4(word string) string {
	gt1 := p.aboveOne
	return p.apply(word, []rule{
		{"al", "", gt1},
		{"ance", "", gt1},
		{"ence", "", gt1},
		{"er", "", gt1},
		{"ic", "", gt1},
		{"able", "", gt1},
		{"ible", "", gt1},
		{"ant", "", gt1},
		{"ement", "", gt1},
		{"ment", "", gt1},
		{"ent", "", gt1},
		{"ion", "", func(s string) bool {
			return p.aboveOne(s) && (strings.HasSuffix(s, "s") || strings.HasSuffix(s, "t"))
		}},
		{"ou", "", gt1},
		{"ism", "", gt1},
		{"ate", "", gt1},
		{"iti", "", gt1},
		{"ous", "", gt1},
		{"ive", "", gt1},
		{"ize", "", gt1},
	})
}

func (p porter) step5a(word string) string {
	if !strings.HasSuffix(word, "e") {
		return word
	}
	stem := word[:len(word)-1]
	switch m := p.measure(stem); {
	case m > 1:
		return stem
	case m == 1 && !p.endsCVC(stem):
		return stem
	}
	return word
}

func (p porter) step5b(word string) string {
	return p.apply(word, []rule{{
		suffix:      "ll",
		replacement: "l",
		when: func(string) bool {
			return p.aboveOne(word[:len(word)-1])
		},
	}})
}
