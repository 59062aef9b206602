//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFuncAdapters verifies the function adapters forward calls.
func TestFuncAdapters(t *testing.T) {
	e := EmotionFunc(func(_ context.Context, text string) (map[string]float64, error) {
		return map[string]float64{"joy": float64(len(text))}, nil
	})
	probs, err := e.Classify(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3.0, probs["joy"])

	b := BinaryFunc(func(context.Context, string) (float64, error) { return 0.7, nil })
	p, err := b.Probability(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 0.7, p)
}

// TestWrap verifies Error wrapping and unwrapping.
func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap("emotion", nil))

	cause := errors.New("model offline")
	err := Wrap("emotion", cause)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "emotion", cerr.Classifier)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "classifier emotion: model offline")
}

// TestEmotionWithTimeout_Expires verifies slow classifiers are abandoned.
func TestEmotionWithTimeout_Expires(t *testing.T) {
	slow := EmotionFunc(func(ctx context.Context, _ string) (map[string]float64, error) {
		select {
		case <-time.After(time.Second):
			return map[string]float64{}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})
	_, err := EmotionWithTimeout(slow, 10*time.Millisecond).Classify(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestEmotionWithTimeout_Passthrough verifies fast calls and zero timeouts.
func TestEmotionWithTimeout_Passthrough(t *testing.T) {
	fast := EmotionFunc(func(context.Context, string) (map[string]float64, error) {
		return map[string]float64{"calm": 1}, nil
	})
	probs, err := EmotionWithTimeout(fast, time.Second).Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, probs["calm"])

	probs, err = EmotionWithTimeout(fast, 0).Classify(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 1.0, probs["calm"])
}

// TestBinaryWithTimeout verifies the binary decorator.
func TestBinaryWithTimeout(t *testing.T) {
	slow := BinaryFunc(func(ctx context.Context, _ string) (float64, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	_, err := BinaryWithTimeout(slow, 10*time.Millisecond).Probability(context.Background(), "x")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	fast := BinaryFunc(func(context.Context, string) (float64, error) { return 0.3, nil })
	p, err := BinaryWithTimeout(fast, time.Second).Probability(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 0.3, p)
}
