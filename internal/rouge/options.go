//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package rouge

// options holds internal configuration for ROUGE scoring.
type options struct {
	// rougeTypes holds the requested ROUGE types to compute.
	rougeTypes []string
	// useStemmer enables Porter stemming for tokenization.
	useStemmer bool
	// tokenizer overrides the built-in tokenizer when provided.
	tokenizer Tokenizer
}

func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures ROUGE scoring.
type Option func(*options)

// WithRougeTypes sets the ROUGE types to compute, such as rouge1, rouge2 or rougeL.
func WithRougeTypes(rougeTypes ...string) Option {
	return func(o *options) {
		o.rougeTypes = append([]string(nil), rougeTypes...)
	}
}

// WithStemmer enables or disables Porter stemming in the built-in tokenizer.
func WithStemmer(useStemmer bool) Option {
	return func(o *options) {
		o.useStemmer = useStemmer
	}
}

// WithTokenizer overrides the built-in tokenizer.
func WithTokenizer(tokenizer Tokenizer) Option {
	return func(o *options) {
		o.tokenizer = tokenizer
	}
}
