//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package onnx

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

type hfEncoder struct {
	tk *tokenizer.Tokenizer
}

func newEncoder(path string) (encoder, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	return &hfEncoder{tk: tk}, nil
}

func (e *hfEncoder) encode(text string, maxLength int) (*encoding, error) {
	en, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, err
	}
	out := &encoding{
		ids:     toInt64(en.Ids),
		mask:    toInt64(en.AttentionMask),
		typeIDs: toInt64(en.TypeIds),
	}
	truncate(out, maxLength)
	return out, nil
}

// truncate keeps the first maxLength-1 tokens plus the closing special token.
func truncate(enc *encoding, maxLength int) {
	if maxLength < 2 || len(enc.ids) <= maxLength {
		return
	}
	cut := func(s []int64) []int64 {
		if len(s) <= maxLength {
			return s
		}
		return append(s[:maxLength-1:maxLength-1], s[len(s)-1])
	}
	enc.ids = cut(enc.ids)
	enc.mask = cut(enc.mask)
	enc.typeIDs = cut(enc.typeIDs)
}

func toInt64(s []int) []int64 {
	out := make([]int64, len(s))
	for i, v := range s {
		out[i] = int64(v)
	}
	return out
}
