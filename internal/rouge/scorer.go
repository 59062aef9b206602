//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package rouge implements ROUGE-N and ROUGE-L overlap between a target and a prediction.
package rouge

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Supported ROUGE type names.
const (
	TypeUnigram = "rouge1"
	TypeBigram  = "rouge2"
	TypeLCS     = "rougeL"
)

// Score holds ROUGE precision, recall and F-measure, each in [0, 1].
type Score struct {
	Precision float64
	Recall    float64
	FMeasure  float64
}

// Blend combines precision and recall with the given precision share.
func (s Score) Blend(precisionShare float64) float64 {
	return s.Precision*precisionShare + s.Recall*(1-precisionShare)
}

func newScore(hits, predCount, targetCount int) Score {
	precision := float64(hits) / float64(max(predCount, 1))
	recall := float64(hits) / float64(max(targetCount, 1))
	var f float64
	if precision+recall > 0 {
		f = 2 * precision * recall / (precision + recall)
	}
	return Score{Precision: precision, Recall: recall, FMeasure: f}
}

// Compute returns ROUGE scores for a single target and prediction pair keyed
// by ROUGE type. It returns an empty map when no ROUGE types are configured.
func Compute(ctx context.Context, target, prediction string, opt ...Option) (map[string]Score, error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := newOptions(opt...)
	result := make(map[string]Score, len(opts.rougeTypes))
	if len(opts.rougeTypes) == 0 {
		return result, nil
	}
	orders := make([]int, len(opts.rougeTypes))
	for i, rougeType := range opts.rougeTypes {
		n, err := parseRougeType(rougeType)
		if err != nil {
			return nil, err
		}
		orders[i] = n
	}

	tok := opts.tokenizer
	if tok == nil {
		tok = NewTokenizer(opts.useStemmer)
	}
	targetTokens := tok.Tokenize(target)
	predTokens := tok.Tokenize(prediction)
	for i, rougeType := range opts.rougeTypes {
		if orders[i] == 0 {
			result[rougeType] = scoreLCS(targetTokens, predTokens)
			continue
		}
		result[rougeType] = scoreNGrams(targetTokens, predTokens, orders[i])
	}
	return result, nil
}

// parseRougeType returns N for rougeN and 0 for rougeL.
func parseRougeType(rougeType string) (int, error) {
	if rougeType == TypeLCS {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(rougeType, "rouge"))
	if !strings.HasPrefix(rougeType, "rouge") || err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid rouge type: %s", rougeType)
	}
	return n, nil
}

func scoreNGrams(targetTokens, predTokens []string, n int) Score {
	if len(targetTokens) == 0 || len(predTokens) == 0 {
		return Score{}
	}
	targetNGrams := countNGrams(targetTokens, n)
	predNGrams := countNGrams(predTokens, n)

	var hits, targetCount, predCount int
	for key, cnt := range targetNGrams {
		targetCount += cnt
		hits += min(cnt, predNGrams[key])
	}
	for _, cnt := range predNGrams {
		predCount += cnt
	}
	return newScore(hits, predCount, targetCount)
}

// countNGrams builds a multiset of n-grams keyed by the NUL-joined tokens.
func countNGrams(tokens []string, n int) map[string]int {
	if len(tokens) < n {
		return map[string]int{}
	}
	ngrams := make(map[string]int, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		ngrams[strings.Join(tokens[i:i+n], "\x00")]++
	}
	return ngrams
}

func scoreLCS(targetTokens, predTokens []string) Score {
	if len(targetTokens) == 0 || len(predTokens) == 0 {
		return Score{}
	}
	return newScore(lcsLength(targetTokens, predTokens), len(predTokens), len(targetTokens))
}

// lcsLength computes the longest common subsequence length with two rolling rows.
func lcsLength(ref, can []string) int {
	prev := make([]int, len(can)+1)
	curr := make([]int, len(can)+1)
	for i := 1; i <= len(ref); i++ {
		for j := 1; j <= len(can); j++ {
			if ref[i-1] == can[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(can)]
}
