//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cacheinmemory "trpc.group/trpc-go/trpc-response-eval-go/cache/inmemory"
	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
	resultinmemory "trpc.group/trpc-go/trpc-response-eval-go/evalresult/inmemory"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/record"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
)

const (
	scenarioReference = "I understand your feelings and want to support you."
	scenarioCandidate = "I want to help you through this difficult time."
)

func fakeEmotion() classifier.Emotion {
	return classifier.EmotionFunc(func(_ context.Context, text string) (map[string]float64, error) {
		probs := map[string]float64{"neutral": 0.2}
		if strings.Contains(text, "support") || strings.Contains(text, "help") {
			probs["caring"] = 0.7
		}
		if strings.Contains(text, "difficult") {
			probs["sadness"] = 0.4
		}
		return probs, nil
	})
}

func scenarioRecords() []record.TextRecord {
	return []record.TextRecord{
		{Platform: "ChatGPT", Text: scenarioCandidate},
		{Platform: record.DefaultHumanTag, Text: scenarioReference},
		{Platform: "Gemini", Text: ""},
		{Platform: "Claude", Text: "You deserve a safe space and allyship. Are you safe right now? Do you have support?"},
	}
}

func newEvaluator(t *testing.T, opt ...Option) *Evaluator {
	t.Helper()
	e, err := New(append([]Option{WithEmotionClassifier(fakeEmotion())}, opt...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func failing(err error) scorer.Scorer {
	return scorer.Func(func(context.Context, string, string) (float64, error) {
		return 0, err
	})
}

// TestNew_Validation verifies invalid configurations are rejected.
func TestNew_Validation(t *testing.T) {
	_, err := New(WithEmotionClassifier(fakeEmotion()), WithParallelism(0))
	assert.Error(t, err)

	_, err = New(WithEmotionClassifier(fakeEmotion()), WithHumanTag(""))
	assert.Error(t, err)

	_, err = New()
	assert.ErrorContains(t, err, "emotion classifier is nil")

	reg := lexicon.Default()
	reg.Overlap.Unigram.Weight = -1
	_, err = New(WithEmotionClassifier(fakeEmotion()), WithRegistry(reg))
	assert.ErrorContains(t, err, "validate registry")
}

// TestNew_SentimentOverride verifies a replaced sentiment scorer needs no classifier.
func TestNew_SentimentOverride(t *testing.T) {
	e, err := New(WithScorer(scorer.NameSentimentAlignment, scorer.Func(
		func(context.Context, string, string) (float64, error) { return 0.5, nil })))
	require.NoError(t, err)
	defer e.Close()
	assert.ElementsMatch(t, scorer.Names(), e.Scorers())
}

// TestEvaluate_ReferenceErrors verifies fatal reference errors.
func TestEvaluate_ReferenceErrors(t *testing.T) {
	e := newEvaluator(t)
	ctx := context.Background()

	_, err := e.Evaluate(ctx, nil)
	assert.ErrorIs(t, err, ErrNoRecords)

	_, err = e.Evaluate(ctx, []record.TextRecord{{Platform: "A", Text: "x"}})
	assert.ErrorIs(t, err, ErrNoReference)

	_, err = e.Evaluate(ctx, []record.TextRecord{
		{Platform: "Human", Text: "a"},
		{Platform: "A", Text: "x"},
		{Platform: "Human", Text: "b"},
	})
	assert.ErrorIs(t, err, ErrMultipleReferences)

	_, err = e.Evaluate(ctx, []record.TextRecord{{Platform: "human", Text: "a"}, {Platform: "A", Text: "x"}})
	assert.ErrorIs(t, err, ErrNoReference)
}

// TestEvaluate_HumanTag verifies a custom reference tag.
func TestEvaluate_HumanTag(t *testing.T) {
	e := newEvaluator(t, WithHumanTag("Counselor"))
	rows, err := e.Evaluate(context.Background(), []record.TextRecord{
		{Platform: "Counselor", Text: scenarioReference},
		{Platform: "Human", Text: scenarioCandidate},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Human", rows[0].Responder)
}

// TestEvaluate_Scenarios verifies partial overlap and empty candidates.
func TestEvaluate_Scenarios(t *testing.T) {
	e := newEvaluator(t)
	rows, err := e.Evaluate(context.Background(), scenarioRecords())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ChatGPT", "Gemini", "Claude"},
		[]string{rows[0].Responder, rows[1].Responder, rows[2].Responder})

	partial := rows[0]
	assert.Equal(t, scenarioCandidate, partial.Response)
	assert.Greater(t, partial.LexicalOverlap, 0.0)
	assert.Less(t, partial.LexicalOverlap, 0.5)
	assert.Greater(t, partial.SemanticAlignment, 0.0)
	assert.Less(t, partial.SemanticAlignment, 0.5)

	empty := rows[1]
	assert.Equal(t, 0.0, empty.EthicalAlignment)
	assert.Equal(t, 0.0, empty.Inclusivity)
	assert.Equal(t, 0.0, empty.SentimentAlignment)
	assert.Equal(t, 0.0, empty.LexicalOverlap)

	for _, r := range rows {
		for _, name := range []string{
			scorer.NameLexicalOverlap,
			scorer.NameSemanticAlignment,
			scorer.NameEthicalAlignment,
			scorer.NameSentimentAlignment,
		} {
			v, ok := r.Score(name)
			require.True(t, ok)
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 1.0, name)
		}
		assert.GreaterOrEqual(t, r.Inclusivity, 0.0)
	}
}

// TestEvaluate_Deterministic verifies repeated and parallel runs agree.
func TestEvaluate_Deterministic(t *testing.T) {
	ctx := context.Background()
	serial := newEvaluator(t)
	first, err := serial.Evaluate(ctx, scenarioRecords())
	require.NoError(t, err)
	second, err := serial.Evaluate(ctx, scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, serial.ClearCache(ctx))
	third, err := serial.Evaluate(ctx, scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, first, third)

	parallel := newEvaluator(t, WithParallelism(4))
	got, err := parallel.Evaluate(ctx, scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

// TestEvaluate_ScoreErrorAborts verifies failures name the scorer and responder.
func TestEvaluate_ScoreErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	e := newEvaluator(t, WithScorer(scorer.NameComplexity, failing(boom)))

	rows, err := e.Evaluate(context.Background(), scenarioRecords())
	assert.Nil(t, rows)
	require.ErrorIs(t, err, boom)
	var se *ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scorer.NameComplexity, se.Scorer)
	assert.Equal(t, "ChatGPT", se.Responder)
	assert.Equal(t, 0, se.Index)
	assert.Contains(t, err.Error(), "Claude")
}

// TestEvaluate_SkipFailedCandidates verifies successful rows survive.
func TestEvaluate_SkipFailedCandidates(t *testing.T) {
	flaky := scorer.Func(func(_ context.Context, _, candidate string) (float64, error) {
		if candidate == "" {
			return 0, errors.New("empty")
		}
		return 1, nil
	})
	e := newEvaluator(t, WithSkipFailedCandidates(true), WithParallelism(2),
		WithScorer(scorer.NameInclusivity, flaky))

	rows, err := e.Evaluate(context.Background(), scenarioRecords())
	require.Error(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ChatGPT", rows[0].Responder)
	assert.Equal(t, "Claude", rows[1].Responder)
	assert.Equal(t, 1.0, rows[0].Inclusivity)

	var se *ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Gemini", se.Responder)
	assert.Equal(t, 1, se.Index)
}

// TestEvaluate_ClassifierFailure verifies classifier errors are distinguishable.
func TestEvaluate_ClassifierFailure(t *testing.T) {
	down := errors.New("model unavailable")
	e, err := New(WithEmotionClassifier(classifier.EmotionFunc(
		func(context.Context, string) (map[string]float64, error) { return nil, down })))
	require.NoError(t, err)
	defer e.Close()

	_, err = e.Evaluate(context.Background(), []record.TextRecord{
		{Platform: "Human", Text: scenarioReference},
		{Platform: "Bot", Text: scenarioCandidate},
	})
	require.Error(t, err)
	var se *ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scorer.NameSentimentAlignment, se.Scorer)
	assert.Equal(t, "Bot", se.Responder)
	var ce *classifier.Error
	require.True(t, errors.As(err, &ce))
	assert.ErrorIs(t, err, down)
}

// TestEvaluate_Canceled verifies a canceled context stops the run.
func TestEvaluate_Canceled(t *testing.T) {
	e := newEvaluator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err := e.Evaluate(ctx, scenarioRecords())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestEvaluate_CacheLifecycle verifies the injected cache is filled and cleared.
func TestEvaluate_CacheLifecycle(t *testing.T) {
	c := cacheinmemory.New()
	e := newEvaluator(t, WithCache(c))
	ctx := context.Background()

	_, err := e.Evaluate(ctx, scenarioRecords())
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	require.NoError(t, e.ClearCache(ctx))
	assert.Equal(t, 0, c.Len())
}

// TestEvaluate_EthicalScorer verifies a replaced ethical scorer is still cached.
func TestEvaluate_EthicalScorer(t *testing.T) {
	calls := 0
	clf := classifier.BinaryFunc(func(context.Context, string) (float64, error) {
		calls++
		return 0.8, nil
	})
	custom := newEvaluator(t, WithEthicalScorer(binaryEthical{clf}))
	records := []record.TextRecord{
		{Platform: "Human", Text: scenarioReference},
		{Platform: "A", Text: scenarioCandidate},
		{Platform: "B", Text: scenarioCandidate},
	}
	rows, err := custom.Evaluate(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 0.8, rows[0].EthicalAlignment)
	assert.Equal(t, 0.8, rows[1].EthicalAlignment)
	assert.Equal(t, 1, calls)
}

type binaryEthical struct{ clf classifier.Binary }

func (b binaryEthical) Score(ctx context.Context, candidate string) (float64, error) {
	return b.clf.Probability(ctx, candidate)
}

// TestEvaluate_EthicalClassifier verifies the ethical classifier is used
// and bounded by the classifier timeout.
func TestEvaluate_EthicalClassifier(t *testing.T) {
	records := []record.TextRecord{
		{Platform: "Human", Text: scenarioReference},
		{Platform: "Bot", Text: scenarioCandidate},
	}
	fast := newEvaluator(t, WithEthicalClassifier(classifier.BinaryFunc(
		func(context.Context, string) (float64, error) { return 0.734, nil })))
	rows, err := fast.Evaluate(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 0.73, rows[0].EthicalAlignment)

	slow := classifier.BinaryFunc(func(ctx context.Context, _ string) (float64, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(5 * time.Second):
			return 1, nil
		}
	})
	e := newEvaluator(t, WithEthicalClassifier(slow), WithClassifierTimeout(20*time.Millisecond))
	start := time.Now()
	rows, err = e.Evaluate(context.Background(), records)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Nil(t, rows)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	var se *ScoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, scorer.NameEthicalAlignment, se.Scorer)
	var ce *classifier.Error
	assert.True(t, errors.As(err, &ce))
}

// TestEvaluateResultSet verifies result sets are built and saved.
func TestEvaluateResultSet(t *testing.T) {
	mgr := resultinmemory.New()
	e := newEvaluator(t, WithResultManager(mgr))
	ctx := context.Background()

	rs, err := e.EvaluateResultSet(ctx, scenarioRecords())
	require.NoError(t, err)
	assert.NotEmpty(t, rs.ID)
	assert.Equal(t, rs.ID, rs.Name)
	assert.Equal(t, lexicon.Default().Version, rs.RegistryVersion)
	assert.Equal(t, scenarioReference, rs.Reference.Text)
	assert.Len(t, rs.Rows, 3)

	stored, err := mgr.Get(ctx, rs.ID)
	require.NoError(t, err)
	assert.Equal(t, rs.Rows, stored.Rows)

	_, err = e.EvaluateResultSet(ctx, []record.TextRecord{{Platform: "A"}})
	assert.ErrorIs(t, err, ErrNoReference)
}

// TestScoreError verifies the message and unwrapping.
func TestScoreError(t *testing.T) {
	inner := errors.New("inner")
	err := &ScoreError{Scorer: "complexity", Responder: "Bot", Index: 2, Err: inner}
	assert.Equal(t, "scorer complexity failed on candidate 2 (Bot): inner", err.Error())
	assert.ErrorIs(t, err, inner)
}
