//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package record holds the labeled text records fed to an evaluation and
// the helpers that build them from extracted document lines.
package record

import "strings"

// Defaults of the document conventions.
const (
	DefaultHumanTag       = "Human"
	DefaultResponsePrefix = "Response from"
	DefaultSectionSuffix  = ":"
)

// TextRecord is one labeled response.
type TextRecord struct {
	// Platform is the responder name, or the human tag for the reference.
	Platform string `json:"platform"`
	Topic    string `json:"topic,omitempty"`
	Text     string `json:"text"`
}

// Integrate merges the records of each platform into one record whose text
// joins the originals with a single space. Responder records keep the order
// in which their platform first appears; all records tagged humanTag become
// one reference record placed last. Records without a platform are dropped.
func Integrate(records []TextRecord, humanTag string) []TextRecord {
	var (
		order     []string
		texts     = make(map[string][]string)
		reference []string
	)
	for _, r := range records {
		switch r.Platform {
		case "":
			continue
		case humanTag:
			reference = append(reference, r.Text)
			continue
		}
		if _, ok := texts[r.Platform]; !ok {
			order = append(order, r.Platform)
		}
		texts[r.Platform] = append(texts[r.Platform], r.Text)
	}
	out := make([]TextRecord, 0, len(order)+1)
	for _, p := range order {
		out = append(out, TextRecord{Platform: p, Text: strings.Join(texts[p], " ")})
	}
	if len(reference) > 0 {
		out = append(out, TextRecord{Platform: humanTag, Text: strings.Join(reference, " ")})
	}
	return out
}

type parseOptions struct {
	responsePrefix string
	sectionSuffix  string
	platform       string
}

// ParseOption configures ParseSections.
type ParseOption func(*parseOptions)

// WithResponsePrefix sets the marker introducing a responder name.
func WithResponsePrefix(prefix string) ParseOption {
	return func(o *parseOptions) { o.responsePrefix = prefix }
}

// WithSectionSuffix sets the suffix marking a topic heading.
func WithSectionSuffix(suffix string) ParseOption {
	return func(o *parseOptions) { o.sectionSuffix = suffix }
}

// WithPlatform assigns every response to platform and disables responder
// detection. Use it for reference documents.
func WithPlatform(platform string) ParseOption {
	return func(o *parseOptions) { o.platform = platform }
}

// ParseSections turns extracted paragraph lines into records. A line
// containing the response prefix switches the responder to the text after
// the last prefix, a line ending with the section suffix starts a topic, and
// any other non-blank line is a response of the current responder.
func ParseSections(lines []string, opts ...ParseOption) []TextRecord {
	o := &parseOptions{
		responsePrefix: DefaultResponsePrefix,
		sectionSuffix:  DefaultSectionSuffix,
	}
	for _, opt := range opts {
		opt(o)
	}
	var (
		out      []TextRecord
		platform = o.platform
		topic    string
	)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		switch {
		case o.platform == "" && o.responsePrefix != "" && strings.Contains(line, o.responsePrefix):
			parts := strings.Split(line, o.responsePrefix)
			platform = strings.TrimSpace(parts[len(parts)-1])
		case o.sectionSuffix != "" && strings.HasSuffix(line, o.sectionSuffix):
			topic = strings.TrimSpace(strings.TrimSuffix(line, o.sectionSuffix))
		default:
			out = append(out, TextRecord{Platform: platform, Topic: topic, Text: line})
		}
	}
	return out
}
