//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package sentence splits English text into sentences with the Punkt model.
package sentence

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/neurosnap/sentences"
	sentencesdata "github.com/neurosnap/sentences/data"
)

var (
	loadOnce  sync.Once
	tokenizer *sentences.DefaultSentenceTokenizer
	loadErr   error
)

func load() (*sentences.DefaultSentenceTokenizer, error) {
	loadOnce.Do(func() {
		b, err := sentencesdata.Asset("data/english.json")
		if err != nil {
			loadErr = fmt.Errorf("load english punkt data: %w", err)
			return
		}
		training, err := sentences.LoadTraining(b)
		if err != nil {
			loadErr = fmt.Errorf("parse english punkt data: %w", err)
			return
		}
		tokenizer = sentences.NewSentenceTokenizer(training)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	if tokenizer == nil {
		return nil, errors.New("english sentence tokenizer is nil")
	}
	return tokenizer, nil
}

// Split returns the trimmed, non-empty sentences of text. Empty or
// whitespace-only text yields no sentences.
func Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	tok, err := load()
	if err != nil {
		return nil, err
	}
	raw := tok.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, sent := range raw {
		for _, s := range splitStandalonePeriods(strings.TrimSpace(sent.Text)) {
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// splitStandalonePeriods peels leading ". " runs into their own sentences,
// as Punkt does for inputs such as "end. . next".
func splitStandalonePeriods(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" || s[0] != '.' {
			break
		}
		if len(s) > 1 && !unicode.IsSpace(rune(s[1])) {
			break
		}
		out = append(out, ".")
		s = s[1:]
	}
	if s != "" {
		out = append(out, s)
	}
	return out
}
