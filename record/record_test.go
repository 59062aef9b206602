//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseSections_Responders verifies responder and topic tracking.
func TestParseSections_Responders(t *testing.T) {
	lines := []string{
		"Response from ChatGPT",
		"Coming out:",
		"It is brave to share this.",
		"",
		"Response from Gemini",
		"You are not alone.",
		"Safety:",
		"Do you feel safe at home?",
	}
	got := ParseSections(lines)
	assert.Equal(t, []TextRecord{
		{Platform: "ChatGPT", Topic: "Coming out", Text: "It is brave to share this."},
		{Platform: "Gemini", Topic: "Coming out", Text: "You are not alone."},
		{Platform: "Gemini", Topic: "Safety", Text: "Do you feel safe at home?"},
	}, got)
}

// TestParseSections_Reference verifies fixed-platform parsing.
func TestParseSections_Reference(t *testing.T) {
	lines := []string{"Intro:", "Response from a counselor is welcome.", "  ", "I hear you."}
	got := ParseSections(lines, WithPlatform(DefaultHumanTag))
	assert.Equal(t, []TextRecord{
		{Platform: "Human", Topic: "Intro", Text: "Response from a counselor is welcome."},
		{Platform: "Human", Topic: "Intro", Text: "I hear you."},
	}, got)
}

// TestParseSections_CustomMarkers verifies configurable markers.
func TestParseSections_CustomMarkers(t *testing.T) {
	lines := []string{"## Bot A", "Topic =>", "hello"}
	got := ParseSections(lines, WithResponsePrefix("## "), WithSectionSuffix("=>"))
	assert.Equal(t, []TextRecord{{Platform: "Bot A", Topic: "Topic", Text: "hello"}}, got)
}

// TestIntegrate verifies aggregation order and reference placement.
func TestIntegrate(t *testing.T) {
	records := []TextRecord{
		{Platform: "Human", Text: "I hear you."},
		{Platform: "Gemini", Text: "You are"},
		{Platform: "ChatGPT", Text: "It is brave."},
		{Platform: "", Text: "orphan line"},
		{Platform: "Gemini", Text: "not alone."},
		{Platform: "Human", Text: "You matter."},
	}
	got := Integrate(records, DefaultHumanTag)
	assert.Equal(t, []TextRecord{
		{Platform: "Gemini", Text: "You are not alone."},
		{Platform: "ChatGPT", Text: "It is brave."},
		{Platform: "Human", Text: "I hear you. You matter."},
	}, got)
}

// TestIntegrate_NoReference verifies no reference record is invented.
func TestIntegrate_NoReference(t *testing.T) {
	got := Integrate([]TextRecord{{Platform: "A", Text: "x"}}, DefaultHumanTag)
	assert.Equal(t, []TextRecord{{Platform: "A", Text: "x"}}, got)
	assert.Empty(t, Integrate(nil, DefaultHumanTag))
}
