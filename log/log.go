//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package log provides logging utilities.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log level constants
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Output encodings.
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

var zapLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// Default is the package logger, backed by zap.
// It may be replaced with any implementation of Logger.
var Default Logger = New(os.Stderr, EncodingConsole)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// New returns a zap backed Logger writing to w with the given encoding. It
// shares the level set by SetLevel.
func New(w io.Writer, encoding string) Logger {
	enc := zapcore.NewConsoleEncoder(encoderConfig)
	if encoding == EncodingJSON {
		enc = zapcore.NewJSONEncoder(encoderConfig)
	}
	return zap.New(
		zapcore.NewCore(enc, zapcore.AddSync(w), zapLevel),
		zap.AddCaller(),
		zap.AddCallerSkip(1),
	).Sugar()
}

// SetLevel sets the log level to the specified level.
// Valid levels are: "debug", "info", "warn", "error". Anything else selects info.
func SetLevel(level string) {
	switch level {
	case LevelDebug:
		zapLevel.SetLevel(zapcore.DebugLevel)
	case LevelWarn:
		zapLevel.SetLevel(zapcore.WarnLevel)
	case LevelError:
		zapLevel.SetLevel(zapcore.ErrorLevel)
	default:
		zapLevel.SetLevel(zapcore.InfoLevel)
	}
}

// Logger is the printf-style logger used by the module. A zap
// SugaredLogger satisfies it.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Debugf logs at debug level through Default.
func Debugf(format string, args ...any) { Default.Debugf(format, args...) }

// Infof logs at info level through Default.
func Infof(format string, args ...any) { Default.Infof(format, args...) }

// Warnf logs at warn level through Default.
func Warnf(format string, args ...any) { Default.Warnf(format, args...) }

// Errorf logs at error level through Default.
func Errorf(format string, args ...any) { Default.Errorf(format, args...) }
