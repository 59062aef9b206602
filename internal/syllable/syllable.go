//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package syllable counts syllables with a pronouncing dictionary in CMU format.
//
// A word's syllable count is the number of stress-marked phonemes in its first
// listed pronunciation.
package syllable

import (
	"bufio"
	"bytes"
	"compress/gzip"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed cmudict-common.txt.gz
var commonWords []byte

// Dictionary maps lower-cased words to syllable counts.
type Dictionary struct {
	entries map[string]int
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the embedded common-word dictionary.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := loadGzip(bytes.NewReader(commonWords))
		if err != nil {
			panic(fmt.Sprintf("syllable: parse embedded dictionary: %v", err))
		}
		defaultDict = d
	})
	return defaultDict
}

// LoadDictionary parses a CMU format dictionary. Lines starting with ";;;"
// are comments. Alternate pronunciations such as "WORD(1)" are ignored.
func LoadDictionary(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{entries: make(map[string]int)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, ";;;") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: missing pronunciation", line)
		}
		word := strings.ToLower(fields[0])
		if strings.HasSuffix(word, ")") && strings.Contains(word, "(") {
			continue
		}
		if _, ok := d.entries[word]; ok {
			continue
		}
		d.entries[word] = countStressed(fields[1:])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return d, nil
}

// LoadFile parses the CMU format dictionary at path. Paths ending in ".gz"
// are decompressed first.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dictionary: %w", err)
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gz") {
		return loadGzip(f)
	}
	return LoadDictionary(f)
}

func loadGzip(r io.Reader) (*Dictionary, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip dictionary: %w", err)
	}
	defer zr.Close()
	return LoadDictionary(zr)
}

func countStressed(phonemes []string) int {
	n := 0
	for _, p := range phonemes {
		if last := p[len(p)-1]; last >= '0' && last <= '9' {
			n++
		}
	}
	return n
}

// Lookup returns the syllable count of word and whether it is known.
func (d *Dictionary) Lookup(word string) (int, bool) {
	n, ok := d.entries[strings.ToLower(word)]
	return n, ok
}

// Count returns the syllable count of word, or fallback when unknown.
func (d *Dictionary) Count(word string, fallback int) int {
	if n, ok := d.Lookup(word); ok {
		return n
	}
	return fallback
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
