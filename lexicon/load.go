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
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the YAML override format. Absent sections keep their defaults.
type document struct {
	Version     string          `yaml:"version"`
	Overlap     *overlapDoc     `yaml:"overlap"`
	Alignment   *alignmentDoc   `yaml:"alignment"`
	Ethical     *ethicalDoc     `yaml:"ethical"`
	Emotions    *emotionsDoc    `yaml:"emotions"`
	Inclusivity *inclusivityDoc `yaml:"inclusivity"`
	Readability *readabilityDoc `yaml:"readability"`
}

type blendDoc struct {
	Weight    *float64 `yaml:"weight"`
	Precision *float64 `yaml:"precision"`
}

type overlapDoc struct {
	Unigram *blendDoc `yaml:"unigram"`
	Bigram  *blendDoc `yaml:"bigram"`
	LCS     *blendDoc `yaml:"lcs"`
}

type alignmentDoc struct {
	Alpha    *float64   `yaml:"alpha"`
	Beta     *float64   `yaml:"beta"`
	Gamma    *float64   `yaml:"gamma"`
	Synonyms [][]string `yaml:"synonyms"`
}

type countTierDoc struct {
	Min   int     `yaml:"min"`
	Value float64 `yaml:"value"`
}

type jointTierDoc struct {
	MinTerms     int     `yaml:"min_terms"`
	MinQuestions int     `yaml:"min_questions"`
	Value        float64 `yaml:"value"`
}

type floorDoc struct {
	MinCrisis     *int     `yaml:"min_crisis"`
	MinSupportive *int     `yaml:"min_supportive"`
	MinQuestions  *int     `yaml:"min_questions"`
	Score         *float64 `yaml:"score"`
}

type ethicalDoc struct {
	Affirming        []string `yaml:"affirming"`
	Professional     []string `yaml:"professional"`
	Crisis           []string `yaml:"crisis"`
	Supportive       []string `yaml:"supportive"`
	Negative         []string `yaml:"negative"`
	QuestionPatterns []string `yaml:"question_patterns"`

	AffirmingTiers       []countTierDoc `yaml:"affirming_tiers"`
	AffirmingFallback    *float64       `yaml:"affirming_fallback"`
	ProfessionalTiers    []countTierDoc `yaml:"professional_tiers"`
	ProfessionalFallback *float64       `yaml:"professional_fallback"`
	CrisisTiers          []jointTierDoc `yaml:"crisis_tiers"`
	CrisisFallback       *float64       `yaml:"crisis_fallback"`
	SupportiveSaturation *float64       `yaml:"supportive_saturation"`
	SupportiveMax        *float64       `yaml:"supportive_max"`
	QuestionTiers        []jointTierDoc `yaml:"question_tiers"`
	QuestionFallback     *float64       `yaml:"question_fallback"`
	DepthTiers           []countTierDoc `yaml:"depth_tiers"`
	DepthFallback        *float64       `yaml:"depth_fallback"`
	NegativePenalty      *float64       `yaml:"negative_penalty"`
	Floor                *floorDoc      `yaml:"floor"`
}

type emotionsDoc struct {
	Relevant []string           `yaml:"relevant"`
	Weights  map[string]float64 `yaml:"weights"`
}

type tierDoc struct {
	Name   string   `yaml:"name"`
	Points float64  `yaml:"points"`
	Terms  []string `yaml:"terms"`
}

type inclusivityDoc struct {
	Awards        []tierDoc `yaml:"awards"`
	Penalties     []tierDoc `yaml:"penalties"`
	VolumeDivisor *float64  `yaml:"volume_divisor"`
}

type readabilityDoc struct {
	Base                     *float64 `yaml:"base"`
	SentenceWeight           *float64 `yaml:"sentence_weight"`
	SyllableWeight           *float64 `yaml:"syllable_weight"`
	SentenceComplexityWeight *float64 `yaml:"sentence_complexity_weight"`
}

// Load reads a YAML override document and applies it on top of Default. The
// result is validated before it is returned.
func Load(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode lexicon registry: %w", err)
	}
	reg := Default()
	doc.apply(reg)
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// LoadFile loads a YAML override document from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon registry: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (d *document) apply(reg *Registry) {
	if d.Version != "" {
		reg.Version = d.Version
	}
	if d.Overlap != nil {
		d.Overlap.Unigram.apply(&reg.Overlap.Unigram)
		d.Overlap.Bigram.apply(&reg.Overlap.Bigram)
		d.Overlap.LCS.apply(&reg.Overlap.LCS)
	}
	if a := d.Alignment; a != nil {
		set(&reg.Alignment.Alpha, a.Alpha)
		set(&reg.Alignment.Beta, a.Beta)
		set(&reg.Alignment.Gamma, a.Gamma)
		if a.Synonyms != nil {
			groups := make([][]string, len(a.Synonyms))
			for i, g := range a.Synonyms {
				groups[i] = lower(g)
			}
			reg.Alignment.Synonyms = groups
		}
	}
	if d.Ethical != nil {
		d.Ethical.apply(&reg.Ethical)
	}
	if e := d.Emotions; e != nil {
		if e.Relevant != nil {
			reg.Emotions.Relevant = lower(e.Relevant)
		}
		for label, w := range e.Weights {
			reg.Emotions.Weights[strings.ToLower(label)] = w
		}
	}
	if in := d.Inclusivity; in != nil {
		if in.Awards != nil {
			reg.Inclusivity.Awards = tiered(in.Awards)
		}
		if in.Penalties != nil {
			reg.Inclusivity.Penalties = tiered(in.Penalties)
		}
		set(&reg.Inclusivity.VolumeDivisor, in.VolumeDivisor)
	}
	if rd := d.Readability; rd != nil {
		set(&reg.Readability.Base, rd.Base)
		set(&reg.Readability.SentenceWeight, rd.SentenceWeight)
		set(&reg.Readability.SyllableWeight, rd.SyllableWeight)
		set(&reg.Readability.SentenceComplexityWeight, rd.SentenceComplexityWeight)
	}
}

func (b *blendDoc) apply(dst *Blend) {
	if b == nil {
		return
	}
	set(&dst.Weight, b.Weight)
	set(&dst.Precision, b.Precision)
}

func (e *ethicalDoc) apply(dst *Ethical) {
	for _, l := range []struct {
		terms []string
		dst   *Lexicon
	}{
		{e.Affirming, &dst.Affirming},
		{e.Professional, &dst.Professional},
		{e.Crisis, &dst.Crisis},
		{e.Supportive, &dst.Supportive},
		{e.Negative, &dst.Negative},
	} {
		if l.terms != nil {
			*l.dst = New(l.dst.Name(), l.terms...)
		}
	}
	if e.QuestionPatterns != nil {
		dst.QuestionPatterns = lower(e.QuestionPatterns)
	}
	if e.AffirmingTiers != nil {
		dst.AffirmingTiers = countTiers(e.AffirmingTiers)
	}
	if e.ProfessionalTiers != nil {
		dst.ProfessionalTiers = countTiers(e.ProfessionalTiers)
	}
	if e.CrisisTiers != nil {
		dst.CrisisTiers = jointTiers(e.CrisisTiers)
	}
	if e.QuestionTiers != nil {
		dst.QuestionTiers = jointTiers(e.QuestionTiers)
	}
	if e.DepthTiers != nil {
		dst.DepthTiers = countTiers(e.DepthTiers)
	}
	set(&dst.AffirmingFallback, e.AffirmingFallback)
	set(&dst.ProfessionalFallback, e.ProfessionalFallback)
	set(&dst.CrisisFallback, e.CrisisFallback)
	set(&dst.SupportiveSaturation, e.SupportiveSaturation)
	set(&dst.SupportiveMax, e.SupportiveMax)
	set(&dst.QuestionFallback, e.QuestionFallback)
	set(&dst.DepthFallback, e.DepthFallback)
	set(&dst.NegativePenalty, e.NegativePenalty)
	if f := e.Floor; f != nil {
		set(&dst.Floor.MinCrisis, f.MinCrisis)
		set(&dst.Floor.MinSupportive, f.MinSupportive)
		set(&dst.Floor.MinQuestions, f.MinQuestions)
		set(&dst.Floor.Score, f.Score)
	}
}

func countTiers(docs []countTierDoc) []CountTier {
	out := make([]CountTier, len(docs))
	for i, d := range docs {
		out[i] = CountTier{Min: d.Min, Value: d.Value}
	}
	return out
}

func jointTiers(docs []jointTierDoc) []JointTier {
	out := make([]JointTier, len(docs))
	for i, d := range docs {
		out[i] = JointTier{MinTerms: d.MinTerms, MinQuestions: d.MinQuestions, Value: d.Value}
	}
	return out
}

func tiered(docs []tierDoc) TieredLexicon {
	tiers := make([]Tier, len(docs))
	for i, d := range docs {
		tiers[i] = Tier{Name: d.Name, Points: d.Points, Terms: New(d.Name, d.Terms...)}
	}
	return NewTiered(tiers...)
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
