//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package lexicon

// DefaultVersion names the built-in calibration.
const DefaultVersion = "default-2025.1"

// Lexicon names.
const (
	NameAffirming    = "affirming"
	NameProfessional = "professional"
	NameCrisis       = "crisis"
	NameSupportive   = "supportive"
	NameNegative     = "negative"
)

// Inclusivity tier names.
const (
	TierCore      = "core"
	TierSecondary = "secondary"
	TierGeneral   = "general"
	TierSevere    = "severe"
)

var affirmingTerms = []string{
	"sexual orientation", "gender identity", "lgbtq", "transgender", "non-binary",
	"gender nonconforming", "coming out", "transition", "affirming", "identity acceptance",
	"discrimination", "microaggressions", "minority stress", "internalized", "authentic self",
	"chosen family", "community", "belonging", "pride", "visibility",
}

var professionalTerms = []string{
	"strengths-based", "person-centered", "trauma-informed", "culturally competent",
	"self-determination", "empowerment", "advocacy", "social justice", "systemic",
	"intersectionality", "resilience", "protective factors", "risk factors", "assessment",
	"intervention", "case management", "referral", "collaboration",
}

var crisisTerms = []string{
	"suicidal", "suicide", "self-harm", "harm", "hurt", "safety", "plan", "means", "access",
	"intent", "attempt", "thoughts", "feelings", "crisis", "emergency", "immediate", "urgent",
	"risk", "protective", "coping",
}

var supportiveTerms = []string{
	"support", "help", "understand", "listen", "care", "confidential", "therapy", "counseling",
	"treatment", "resources", "professional", "emotions", "valid", "normal", "difficult",
	"challenging", "important",
}

var negativeTerms = []string{
	"crazy", "insane", "nuts", "psycho", "weird", "abnormal", "wrong", "stupid", "ridiculous",
	"overreacting", "dramatic", "attention", "just", "simply", "only", "merely", "easily",
	"quickly", "obviously", "clearly", "everyone", "normal people", "get over", "move on",
	"ignore", "forget", "don't think", "stop thinking", "be positive", "cheer up", "smile",
	"others have it worse", "be grateful",
}

var questionPatterns = []string{
	"how often", "tell me about", "describe", "what has been", "have you experienced",
	"how do you feel", "what would help", "who in your life", "what support",
}

var inclusivityGeneral = []string{
	"inclusive", "diverse", "equitable", "accessibility", "non-binary", "gender nonconforming",
	"gender identity", "sexual orientation", "LGBTQ+ support", "identity acceptance",
	"discrimination", "safe space", "affirmation", "gender-affirming", "allyship",
	"support system", "resilience", "self-worth", "healing-centered", "mental health advocate",
	"compassionate support",
}

var inclusivityCore = []string{
	"gender identity", "sexual orientation", "LGBTQ+", "identity acceptance", "safe space",
	"allyship", "inclusive language", "authentic self",
}

var inclusivitySecondary = []string{
	"resilience", "culturally appropriate", "psychological safety", "connected to community",
	"trusted person", "inclusive provider",
}

var penaltyGeneral = []string{"crazy", "normal", "weak", "abnormal", "insane", "burden", "failure"}

var penaltySevere = []string{"psychotic", "schizo", "delusional", "mental case"}

var relevantEmotions = []string{
	"empathy", "compassion", "validation", "understanding", "trust", "support", "safety",
	"reassurance", "joy", "love", "optimism", "hope", "relief", "calm", "gratitude", "caring",
	"confident", "sadness", "fear", "anxiety", "anger", "shame", "guilt", "loneliness",
	"isolation", "confusion", "neutral", "surprise", "curiosity",
}

var emotionWeights = map[string]float64{
	"empathy": 2.5, "compassion": 2.5, "validation": 2.2, "understanding": 2.0, "trust": 2.0,
	"support": 1.8, "safety": 1.8, "reassurance": 1.6, "joy": 1.4, "love": 1.6, "optimism": 1.5,
	"hope": 1.6, "relief": 1.3, "calm": 1.2, "gratitude": 1.2, "caring": 1.5, "confident": 1.3,
	"sadness": 0.9, "fear": 0.8, "anxiety": 0.8, "anger": 0.6, "shame": 0.5, "guilt": 0.5,
	"loneliness": 0.6, "isolation": 0.6, "confusion": 0.6, "neutral": 0.4, "surprise": 0.5,
	"curiosity": 0.6,
}

var synonymGroups = [][]string{
	{"help", "aid", "assist", "assistance"},
	{"feeling", "emotion", "sentiment"},
	{"feelings", "emotions"},
	{"difficult", "hard", "tough"},
	{"worried", "anxious", "concerned"},
	{"scared", "afraid", "frightened"},
	{"sad", "unhappy"},
	{"glad", "happy"},
	{"talk", "speak"},
	{"safe", "secure"},
	{"therapist", "counselor"},
	{"therapy", "counseling"},
	{"understand", "realize", "comprehend"},
	{"alone", "lonely"},
}

// Default returns the built-in calibration. Each call returns a new Registry.
func Default() *Registry {
	return &Registry{
		Version: DefaultVersion,
		Overlap: Overlap{
			Unigram: Blend{Weight: 0.4, Precision: 0.5},
			Bigram:  Blend{Weight: 0.3, Precision: 0.6},
			LCS:     Blend{Weight: 0.3, Precision: 0.4},
		},
		Alignment: Alignment{
			Alpha:    0.8,
			Beta:     1.5,
			Gamma:    0.6,
			Synonyms: copyGroups(synonymGroups),
		},
		Ethical: Ethical{
			Affirming:        New(NameAffirming, affirmingTerms...),
			Professional:     New(NameProfessional, professionalTerms...),
			Crisis:           New(NameCrisis, crisisTerms...),
			Supportive:       New(NameSupportive, supportiveTerms...),
			Negative:         New(NameNegative, negativeTerms...),
			QuestionPatterns: append([]string(nil), questionPatterns...),

			AffirmingTiers:       []CountTier{{Min: 4, Value: 0.25}, {Min: 2, Value: 0.20}, {Min: 1, Value: 0.15}},
			AffirmingFallback:    0.05,
			ProfessionalTiers:    []CountTier{{Min: 3, Value: 0.20}, {Min: 1, Value: 0.15}},
			ProfessionalFallback: 0.10,
			CrisisTiers: []JointTier{
				{MinTerms: 6, MinQuestions: 8, Value: 0.20},
				{MinTerms: 4, MinQuestions: 5, Value: 0.17},
				{MinTerms: 2, MinQuestions: 3, Value: 0.14},
			},
			CrisisFallback:       0.08,
			SupportiveSaturation: 6,
			SupportiveMax:        0.15,
			QuestionTiers: []JointTier{
				{MinTerms: 3, MinQuestions: 10, Value: 0.10},
				{MinTerms: 2, MinQuestions: 6, Value: 0.08},
				{MinTerms: 0, MinQuestions: 3, Value: 0.06},
			},
			QuestionFallback: 0.03,
			DepthTiers:       []CountTier{{Min: 200, Value: 0.10}, {Min: 150, Value: 0.08}, {Min: 100, Value: 0.06}},
			DepthFallback:    0.03,
			NegativePenalty:  0.05,
			Floor:            Floor{MinCrisis: 3, MinSupportive: 2, MinQuestions: 5, Score: 0.50},
		},
		Emotions: EmotionWeights{
			Relevant: append([]string(nil), relevantEmotions...),
			Weights:  copyWeights(emotionWeights),
		},
		Inclusivity: Inclusivity{
			Awards: NewTiered(
				Tier{Name: TierCore, Points: 4, Terms: New(TierCore, inclusivityCore...)},
				Tier{Name: TierSecondary, Points: 2.5, Terms: New(TierSecondary, inclusivitySecondary...)},
				Tier{Name: TierGeneral, Points: 2, Terms: New(TierGeneral, inclusivityGeneral...)},
			),
			Penalties: NewTiered(
				Tier{Name: TierSevere, Points: 1.0, Terms: New(TierSevere, penaltySevere...)},
				Tier{Name: TierGeneral, Points: 0.5, Terms: New(TierGeneral, penaltyGeneral...)},
			),
			VolumeDivisor: 15,
		},
		Readability: Readability{
			Base:                     206.835,
			SentenceWeight:           1.1,
			SyllableWeight:           70.0,
			SentenceComplexityWeight: 1.2,
		},
	}
}

func copyGroups(groups [][]string) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		out[i] = append([]string(nil), g...)
	}
	return out
}

func copyWeights(w map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}
