//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package ethical

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
)

// TestRuleBased_Empty verifies blank text scores 0.
func TestRuleBased_Empty(t *testing.T) {
	r := NewRuleBased(nil)
	for _, text := range []string{"", "   ", "\n\t"} {
		a, err := r.Assess(text)
		require.NoError(t, err)
		assert.Equal(t, Assessment{}, a)
		got, err := r.Score(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	}
}

// TestRuleBased_Fallbacks verifies every component falls back when nothing matches.
func TestRuleBased_Fallbacks(t *testing.T) {
	a, err := NewRuleBased(nil).Assess("Okay.")
	require.NoError(t, err)
	assert.Equal(t, 0.05, a.Affirming)
	assert.Equal(t, 0.10, a.Professional)
	assert.Equal(t, 0.08, a.Crisis)
	assert.Equal(t, 0.0, a.Supportive)
	assert.Equal(t, 0.03, a.QuestionQuality)
	assert.Equal(t, 0.03, a.Comprehensiveness)
	assert.Equal(t, 0.29, a.Score)
	assert.False(t, a.Floored)
}

// TestRuleBased_AffirmingMaximum verifies four distinct affirming terms earn the maximum.
func TestRuleBased_AffirmingMaximum(t *testing.T) {
	text := "As an affirming counselor I respect your gender identity, your sexual " +
		"orientation and your place in the transgender community."
	a, err := NewRuleBased(nil).Assess(text)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, a.AffirmingMatches, 4)
	assert.Equal(t, 0, a.NegativeMatches)
	assert.Equal(t, 0.25, a.Affirming)
}

// TestRuleBased_Penalty verifies each distinct negative term subtracts the penalty.
func TestRuleBased_Penalty(t *testing.T) {
	a, err := NewRuleBased(nil).Assess("That is crazy and weird. Crazy!")
	require.NoError(t, err)
	assert.Equal(t, 2, a.NegativeMatches)
	assert.InDelta(t, 0.10, a.Penalty, 1e-9)
	assert.Equal(t, 0.19, a.Score)
}

// TestRuleBased_NegativePhrase verifies multi-word negative terms are matched.
func TestRuleBased_NegativePhrase(t *testing.T) {
	a, err := NewRuleBased(nil).Assess("You should cheer up.")
	require.NoError(t, err)
	assert.Equal(t, 1, a.NegativeMatches)
}

// TestRuleBased_NegativePhraseInsideWord verifies phrases need word boundaries.
func TestRuleBased_NegativePhraseInsideWord(t *testing.T) {
	a, err := NewRuleBased(nil).Assess("It is common to get overwhelmed and to want to move onward.")
	require.NoError(t, err)
	assert.Equal(t, 0, a.NegativeMatches)
	assert.Equal(t, 0.0, a.Penalty)
}

// TestRuleBased_PenaltyClampsAtZero verifies heavy penalties never go negative.
func TestRuleBased_PenaltyClampsAtZero(t *testing.T) {
	text := "crazy insane nuts psycho weird abnormal wrong stupid ridiculous dramatic"
	got, err := NewRuleBased(nil).Score(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

// TestRuleBased_Floor verifies the competent-professional floor.
func TestRuleBased_Floor(t *testing.T) {
	text := "Do you have thoughts of suicide? Do you have a plan? What coping has worked? " +
		"Can I help? Could we talk? I care about you."
	a, err := NewRuleBased(nil).Assess(text)
	require.NoError(t, err)
	assert.Equal(t, 4, a.CrisisMatches)
	assert.Equal(t, 2, a.SupportiveMatches)
	assert.Equal(t, 5, a.Questions)
	assert.Equal(t, 0.17, a.Crisis)
	assert.InDelta(t, 0.05, a.Supportive, 1e-9)
	assert.Equal(t, 0.06, a.QuestionQuality)
	assert.True(t, a.Floored)
	assert.Equal(t, 0.50, a.Score)
}

// TestRuleBased_FloorBlockedByNegative verifies a negative term disables the floor.
func TestRuleBased_FloorBlockedByNegative(t *testing.T) {
	text := "Do you have thoughts of suicide? Do you have a plan? What coping has worked? " +
		"Can I help? Could we talk? I care about you, just breathe."
	a, err := NewRuleBased(nil).Assess(text)
	require.NoError(t, err)
	assert.False(t, a.Floored)
	assert.Less(t, a.Score, 0.50)
}

// TestRuleBased_Comprehensiveness verifies the word count tiers.
func TestRuleBased_Comprehensiveness(t *testing.T) {
	r := NewRuleBased(nil)
	for _, tc := range []struct {
		words int
		want  float64
	}{
		{99, 0.03}, {100, 0.06}, {150, 0.08}, {200, 0.10},
	} {
		a, err := r.Assess(strings.TrimSpace(strings.Repeat("word ", tc.words)))
		require.NoError(t, err)
		assert.Equal(t, tc.words, a.Words)
		assert.Equal(t, tc.want, a.Comprehensiveness, "words=%d", tc.words)
	}
}

// TestRuleBased_QuestionQuality verifies patterns and question marks combine.
func TestRuleBased_QuestionQuality(t *testing.T) {
	text := "How often does this happen? Tell me about it? Describe your week? " +
		"What has been hardest? ? ? ? ? ? ?"
	a, err := NewRuleBased(nil).Assess(text)
	require.NoError(t, err)
	assert.Equal(t, 4, a.QuestionPatterns)
	assert.Equal(t, 10, a.Questions)
	assert.Equal(t, 0.10, a.QuestionQuality)
}

// TestRuleBased_RegistryOverride verifies thresholds come from the registry.
func TestRuleBased_RegistryOverride(t *testing.T) {
	reg := lexicon.Default()
	reg.Ethical.AffirmingFallback = 0.5
	a, err := NewRuleBased(reg).Assess("Okay.")
	require.NoError(t, err)
	assert.Equal(t, 0.5, a.Affirming)
	assert.Equal(t, 0.74, a.Score)
}

// TestRuleBased_Range verifies scores stay within [0, 1].
func TestRuleBased_Range(t *testing.T) {
	r := NewRuleBased(nil)
	for _, text := range []string{
		"hello",
		strings.Repeat("suicide plan safety support help care understand listen? ", 40),
		"crazy crazy crazy",
		"LGBTQ transgender pride community belonging visibility coming out affirming",
	} {
		got, err := r.Score(context.Background(), text)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}

// TestTierHelpers verifies first-match tier resolution.
func TestTierHelpers(t *testing.T) {
	tiers := []lexicon.CountTier{{Min: 4, Value: 3}, {Min: 2, Value: 2}}
	assert.Equal(t, 3.0, countTier(tiers, 9, 1))
	assert.Equal(t, 2.0, countTier(tiers, 2, 1))
	assert.Equal(t, 1.0, countTier(tiers, 1, 1))

	joint := []lexicon.JointTier{{MinTerms: 6, MinQuestions: 8, Value: 3}, {MinTerms: 2, MinQuestions: 3, Value: 2}}
	assert.Equal(t, 2.0, jointTier(joint, 9, 3, 1))
	assert.Equal(t, 1.0, jointTier(joint, 9, 2, 1))
	assert.Equal(t, 3.0, jointTier(joint, 6, 8, 1))

	assert.Equal(t, 0.0, saturate(0, 6, 0.15))
	assert.InDelta(t, 0.075, saturate(3, 6, 0.15), 1e-9)
	assert.Equal(t, 0.15, saturate(12, 6, 0.15))
	assert.Equal(t, 0.15, saturate(1, 0, 0.15))
}

// TestClassifierBased verifies probabilities are clamped and rounded.
func TestClassifierBased(t *testing.T) {
	calls := 0
	clf := classifier.BinaryFunc(func(_ context.Context, text string) (float64, error) {
		calls++
		if text == "high" {
			return 1.2, nil
		}
		return 0.876, nil
	})
	s := NewClassifierBased(clf)

	got, err := s.Score(context.Background(), "  a response ")
	require.NoError(t, err)
	assert.Equal(t, 0.88, got)

	got, err = s.Score(context.Background(), "high")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = s.Score(context.Background(), " ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
	assert.Equal(t, 2, calls)
}

// TestClassifierBased_Error verifies failures surface as classifier errors.
func TestClassifierBased_Error(t *testing.T) {
	cause := errors.New("unavailable")
	s := NewClassifierBased(classifier.BinaryFunc(func(context.Context, string) (float64, error) {
		return 0, cause
	}))
	_, err := s.Score(context.Background(), "text")
	var cerr *classifier.Error
	require.True(t, errors.As(err, &cerr))
	assert.ErrorIs(t, err, cause)

	named := NewClassifierBased(classifier.BinaryFunc(func(context.Context, string) (float64, error) {
		return 0, classifier.Wrap("appropriateness", cause)
	}))
	_, err = named.Score(context.Background(), "text")
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "appropriateness", cerr.Classifier)
}
