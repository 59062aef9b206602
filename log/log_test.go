//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestSetLevel verifies that SetLevel updates the shared zap level.
func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel(LevelInfo) })
	cases := []struct {
		in       string
		expected zapcore.Level
	}{
		{LevelDebug, zapcore.DebugLevel},
		{LevelInfo, zapcore.InfoLevel},
		{LevelWarn, zapcore.WarnLevel},
		{LevelError, zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
	}
	for _, c := range cases {
		SetLevel(c.in)
		assert.Equal(t, c.expected, zapLevel.Level(), c.in)
	}
}

// TestNew_JSON verifies the JSON encoding and level filtering.
func TestNew_JSON(t *testing.T) {
	t.Cleanup(func() { SetLevel(LevelInfo) })
	SetLevel(LevelInfo)
	var buf bytes.Buffer
	l := New(&buf, EncodingJSON)
	l.Debugf("hidden %d", 1)
	l.Infof("scored %d candidates", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["lvl"])
	assert.Equal(t, "scored 3 candidates", entry["message"])
}

// TestPackageHelpers verifies the helpers delegate to Default.
func TestPackageHelpers(t *testing.T) {
	stub := &stubLogger{}
	old := Default
	Default = stub
	t.Cleanup(func() { Default = old })

	Debugf("a")
	Infof("a")
	Warnf("a")
	Errorf("a %d", 1)
	assert.Equal(t, 4, stub.calls)
}

type stubLogger struct{ calls int }

func (s *stubLogger) Debugf(string, ...any) { s.calls++ }
func (s *stubLogger) Infof(string, ...any)  { s.calls++ }
func (s *stubLogger) Warnf(string, ...any)  { s.calls++ }
func (s *stubLogger) Errorf(string, ...any) { s.calls++ }
