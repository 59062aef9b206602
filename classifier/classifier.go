//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package classifier defines the boundary to pretrained text classifiers.
//
// Scorers consume two capabilities: an emotion classifier returning a
// probability per label, and a binary classifier returning the probability
// that a text is appropriate. Both may be backed by a local model (see
// classifier/onnx), a remote service, or a test double.
package classifier

import (
	"context"
	"fmt"
	"time"
)

// Emotion classifies text into emotion labels.
type Emotion interface {
	// Classify returns the probability of every label the model knows.
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// Binary estimates the probability that text belongs to the positive class.
type Binary interface {
	Probability(ctx context.Context, text string) (float64, error)
}

// EmotionFunc adapts a function to Emotion.
type EmotionFunc func(ctx context.Context, text string) (map[string]float64, error)

// Classify implements Emotion.
func (f EmotionFunc) Classify(ctx context.Context, text string) (map[string]float64, error) {
	return f(ctx, text)
}

// BinaryFunc adapts a function to Binary.
type BinaryFunc func(ctx context.Context, text string) (float64, error)

// Probability implements Binary.
func (f BinaryFunc) Probability(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// Error reports a classifier failure.
type Error struct {
	Classifier string
	Err        error
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("classifier %s: %v", e.Classifier, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// Wrap returns err as *Error naming the classifier, or nil.
func Wrap(name string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Classifier: name, Err: err}
}

// EmotionWithTimeout bounds every Classify call by timeout. A non-positive
// timeout returns c unchanged.
func EmotionWithTimeout(c Emotion, timeout time.Duration) Emotion {
	if timeout <= 0 {
		return c
	}
	return EmotionFunc(func(ctx context.Context, text string) (map[string]float64, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		type result struct {
			probs map[string]float64
			err   error
		}
		ch := make(chan result, 1)
		go func() {
			probs, err := c.Classify(ctx, text)
			ch <- result{probs, err}
		}()
		select {
		case r := <-ch:
			return r.probs, r.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
}

// BinaryWithTimeout bounds every Probability call by timeout. A non-positive
// timeout returns c unchanged.
func BinaryWithTimeout(c Binary, timeout time.Duration) Binary {
	if timeout <= 0 {
		return c
	}
	return BinaryFunc(func(ctx context.Context, text string) (float64, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		type result struct {
			p   float64
			err error
		}
		ch := make(chan result, 1)
		go func() {
			p, err := c.Probability(ctx, text)
			ch <- result{p, err}
		}()
		select {
		case r := <-ch:
			return r.p, r.err
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
}
