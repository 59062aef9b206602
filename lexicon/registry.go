//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package lexicon

import (
	"errors"
	"fmt"
	"math"
)

// Registry is a versioned bundle of every calibration table.
type Registry struct {
	Version     string
	Overlap     Overlap
	Alignment   Alignment
	Ethical     Ethical
	Emotions    EmotionWeights
	Inclusivity Inclusivity
	Readability Readability
}

// Blend weights one overlap granularity.
type Blend struct {
	// Weight is the share of this granularity in the final score.
	Weight float64
	// Precision is the precision share; recall gets the rest.
	Precision float64
}

// Overlap holds the lexical overlap weights.
type Overlap struct {
	Unigram Blend
	Bigram  Blend
	LCS     Blend
}

// Alignment holds the semantic alignment coefficients.
type Alignment struct {
	// Alpha balances precision against recall.
	Alpha float64
	// Beta shapes the fragmentation penalty.
	Beta float64
	// Gamma scales the fragmentation penalty.
	Gamma float64
	// Synonyms lists groups of interchangeable words.
	Synonyms [][]string
}

// CountTier awards Value when a count reaches Min.
type CountTier struct {
	Min   int
	Value float64
}

// JointTier awards Value when both a term count and a question count reach
// their minimums.
type JointTier struct {
	MinTerms     int
	MinQuestions int
	Value        float64
}

// Floor raises a competent response to at least Score.
type Floor struct {
	MinCrisis     int
	MinSupportive int
	MinQuestions  int
	Score         float64
}

// Ethical holds the ethical alignment lexicons and thresholds. Tier lists are
// ordered from strictest to laxest and the first satisfied tier wins.
type Ethical struct {
	Affirming        Lexicon
	Professional     Lexicon
	Crisis           Lexicon
	Supportive       Lexicon
	Negative         Lexicon
	QuestionPatterns []string

	AffirmingTiers       []CountTier
	AffirmingFallback    float64
	ProfessionalTiers    []CountTier
	ProfessionalFallback float64
	CrisisTiers          []JointTier
	CrisisFallback       float64
	// SupportiveSaturation is the match count at which the supportive
	// component reaches SupportiveMax.
	SupportiveSaturation float64
	SupportiveMax        float64
	QuestionTiers        []JointTier
	QuestionFallback     float64
	DepthTiers           []CountTier
	DepthFallback        float64
	NegativePenalty      float64
	Floor                Floor
}

// EmotionWeights maps emotion labels to importance weights.
type EmotionWeights struct {
	// Relevant is the ordered list of labels forming comparison vectors.
	Relevant []string
	Weights  map[string]float64
}

// Weight returns the weight of label, or 1.0 when it is not listed.
func (e EmotionWeights) Weight(label string) float64 {
	if w, ok := e.Weights[label]; ok {
		return w
	}
	return 1.0
}

// Inclusivity holds the tiered inclusivity award and penalty lexicons.
type Inclusivity struct {
	Awards    TieredLexicon
	Penalties TieredLexicon
	// VolumeDivisor turns the absolute award into the volume bonus.
	VolumeDivisor float64
}

// Readability holds the readability coefficients.
type Readability struct {
	Base                     float64
	SentenceWeight           float64
	SyllableWeight           float64
	SentenceComplexityWeight float64
}

// ErrInvalidRegistry is returned by Validate for inconsistent registries.
var ErrInvalidRegistry = errors.New("invalid lexicon registry")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRegistry, fmt.Sprintf(format, args...))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkNonNegative(name string, v float64) error {
	if !finite(v) {
		return invalid("%s is not finite", name)
	}
	if v < 0 {
		return invalid("%s is negative", name)
	}
	return nil
}

// Validate reports the first inconsistency in r. Readability coefficients may
// be negative but must be finite.
func (r *Registry) Validate() error {
	for name, b := range map[string]Blend{
		"overlap.unigram": r.Overlap.Unigram,
		"overlap.bigram":  r.Overlap.Bigram,
		"overlap.lcs":     r.Overlap.LCS,
	} {
		if err := checkNonNegative(name+".weight", b.Weight); err != nil {
			return err
		}
		if !finite(b.Precision) || b.Precision < 0 || b.Precision > 1 {
			return invalid("%s.precision must be within [0, 1]", name)
		}
	}
	if !finite(r.Alignment.Alpha) || r.Alignment.Alpha < 0 || r.Alignment.Alpha > 1 {
		return invalid("alignment.alpha must be within [0, 1]")
	}
	if err := checkNonNegative("alignment.beta", r.Alignment.Beta); err != nil {
		return err
	}
	if err := checkNonNegative("alignment.gamma", r.Alignment.Gamma); err != nil {
		return err
	}
	if err := r.Ethical.validate(); err != nil {
		return err
	}
	if err := r.Emotions.validate(); err != nil {
		return err
	}
	if err := r.Inclusivity.validate(); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"readability.base":                       r.Readability.Base,
		"readability.sentence_weight":            r.Readability.SentenceWeight,
		"readability.syllable_weight":            r.Readability.SyllableWeight,
		"readability.sentence_complexity_weight": r.Readability.SentenceComplexityWeight,
	} {
		if !finite(v) {
			return invalid("%s is not finite", name)
		}
	}
	return nil
}

func (e Ethical) validate() error {
	values := map[string]float64{
		"ethical.affirming_fallback":    e.AffirmingFallback,
		"ethical.professional_fallback": e.ProfessionalFallback,
		"ethical.crisis_fallback":       e.CrisisFallback,
		"ethical.supportive_max":        e.SupportiveMax,
		"ethical.question_fallback":     e.QuestionFallback,
		"ethical.depth_fallback":        e.DepthFallback,
		"ethical.negative_penalty":      e.NegativePenalty,
		"ethical.floor.score":           e.Floor.Score,
	}
	for i, t := range e.AffirmingTiers {
		values[fmt.Sprintf("ethical.affirming_tiers[%d]", i)] = t.Value
	}
	for i, t := range e.ProfessionalTiers {
		values[fmt.Sprintf("ethical.professional_tiers[%d]", i)] = t.Value
	}
	for i, t := range e.CrisisTiers {
		values[fmt.Sprintf("ethical.crisis_tiers[%d]", i)] = t.Value
	}
	for i, t := range e.QuestionTiers {
		values[fmt.Sprintf("ethical.question_tiers[%d]", i)] = t.Value
	}
	for i, t := range e.DepthTiers {
		values[fmt.Sprintf("ethical.depth_tiers[%d]", i)] = t.Value
	}
	for name, v := range values {
		if err := checkNonNegative(name, v); err != nil {
			return err
		}
	}
	if !finite(e.SupportiveSaturation) || e.SupportiveSaturation <= 0 {
		return invalid("ethical.supportive_saturation must be positive")
	}
	return nil
}

func (e EmotionWeights) validate() error {
	if len(e.Relevant) == 0 {
		return invalid("emotions.relevant is empty")
	}
	seen := make(map[string]struct{}, len(e.Relevant))
	for _, label := range e.Relevant {
		if _, ok := seen[label]; ok {
			return invalid("emotions.relevant lists %q twice", label)
		}
		seen[label] = struct{}{}
	}
	for label, w := range e.Weights {
		if err := checkNonNegative("emotions.weights."+label, w); err != nil {
			return err
		}
	}
	return nil
}

func (in Inclusivity) validate() error {
	for _, tier := range append(in.Awards.Tiers(), in.Penalties.Tiers()...) {
		if err := checkNonNegative("inclusivity tier "+tier.Name, tier.Points); err != nil {
			return err
		}
	}
	if !finite(in.VolumeDivisor) || in.VolumeDivisor <= 0 {
		return invalid("inclusivity.volume_divisor must be positive")
	}
	return nil
}
