//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package onnx runs HuggingFace sequence classification models exported to
// ONNX. A model directory holds model.onnx, tokenizer.json and config.json;
// label names come from the config's id2label table.
package onnx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/hashicorp/go-multierror"

	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
)

// File names inside a model directory.
const (
	ModelFile     = "model.onnx"
	TokenizerFile = "tokenizer.json"
	ConfigFile    = "config.json"
)

const (
	defaultMaxLength = 512
	multiLabel       = "multi_label_classification"
)

// ErrUnavailable is returned when the binary was built without ONNX Runtime.
var ErrUnavailable = errors.New("onnx runtime unavailable: built without cgo")

// Activation turns logits into probabilities.
type Activation int

const (
	// ActivationAuto picks sigmoid for multi-label models, softmax otherwise.
	ActivationAuto Activation = iota
	// ActivationSoftmax normalizes logits across labels.
	ActivationSoftmax
	// ActivationSigmoid scores each label independently.
	ActivationSigmoid
)

var (
	_ classifier.Emotion = (*Model)(nil)
	_ classifier.Binary  = (*Model)(nil)
)

type options struct {
	name          string
	libraryPath   string
	activation    Activation
	positiveLabel string
	maxLength     int
}

// Option configures a Model.
type Option func(*options)

// WithName names the model in errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLibraryPath sets the ONNX Runtime shared library path.
func WithLibraryPath(path string) Option {
	return func(o *options) { o.libraryPath = path }
}

// WithActivation overrides the activation read from the model config.
func WithActivation(a Activation) Option {
	return func(o *options) { o.activation = a }
}

// WithPositiveLabel names the label whose probability Probability returns.
// By default the last label is used.
func WithPositiveLabel(label string) Option {
	return func(o *options) { o.positiveLabel = label }
}

// WithMaxLength truncates encodings to n tokens.
func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

func newOptions(opts ...Option) *options {
	o := &options{name: "onnx", maxLength: defaultMaxLength}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// encoding is a tokenized input.
type encoding struct {
	ids     []int64
	mask    []int64
	typeIDs []int64
}

type encoder interface {
	encode(text string, maxLength int) (*encoding, error)
}

// engine runs the network and returns the logits of a single input.
type engine interface {
	infer(enc *encoding) ([]float32, error)
	close() error
}

// Model is a loaded classifier. It is safe for concurrent use.
type Model struct {
	mu         sync.Mutex
	name       string
	enc        encoder
	eng        engine
	labels     []string
	activation Activation
	positive   int
	maxLength  int
}

// New loads the model stored in dir.
func New(dir string, opts ...Option) (*Model, error) {
	o := newOptions(opts...)
	cfg, err := loadConfig(filepath.Join(dir, ConfigFile))
	if err != nil {
		return nil, err
	}
	enc, err := newEncoder(filepath.Join(dir, TokenizerFile))
	if err != nil {
		return nil, err
	}
	eng, err := newEngine(filepath.Join(dir, ModelFile), o.libraryPath)
	if err != nil {
		return nil, err
	}
	return assemble(enc, eng, cfg, o)
}

// assemble builds the Model and releases eng when that fails.
func assemble(enc encoder, eng engine, cfg *modelConfig, o *options) (*Model, error) {
	if o.activation == ActivationAuto && cfg.ProblemType == multiLabel {
		o.activation = ActivationSigmoid
	}
	m, err := newModel(enc, eng, cfg.labels, o)
	if err != nil {
		if cerr := eng.close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("close engine: %w", cerr))
		}
		return nil, err
	}
	return m, nil
}

func newModel(enc encoder, eng engine, labels []string, o *options) (*Model, error) {
	if len(labels) == 0 {
		return nil, errors.New("onnx: model has no labels")
	}
	activation := o.activation
	if activation == ActivationAuto {
		activation = ActivationSoftmax
	}
	positive := len(labels) - 1
	if o.positiveLabel != "" {
		positive = -1
		for i, l := range labels {
			if l == o.positiveLabel {
				positive = i
				break
			}
		}
		if positive < 0 {
			return nil, fmt.Errorf("onnx: unknown positive label %q", o.positiveLabel)
		}
	}
	return &Model{
		name:       o.name,
		enc:        enc,
		eng:        eng,
		labels:     labels,
		activation: activation,
		positive:   positive,
		maxLength:  o.maxLength,
	}, nil
}

// Labels returns the label names in output order.
func (m *Model) Labels() []string {
	return append([]string(nil), m.labels...)
}

// Classify implements classifier.Emotion.
func (m *Model) Classify(ctx context.Context, text string) (map[string]float64, error) {
	probs, err := m.run(ctx, text)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(probs))
	for i, p := range probs {
		out[m.labels[i]] = p
	}
	return out, nil
}

// Probability implements classifier.Binary.
func (m *Model) Probability(ctx context.Context, text string) (float64, error) {
	probs, err := m.run(ctx, text)
	if err != nil {
		return 0, err
	}
	return probs[m.positive], nil
}

// Close releases the runtime session.
func (m *Model) Close() error {
	return m.eng.close()
}

func (m *Model) run(ctx context.Context, text string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	enc, err := m.enc.encode(text, m.maxLength)
	if err != nil {
		return nil, classifier.Wrap(m.name, fmt.Errorf("tokenize: %w", err))
	}
	m.mu.Lock()
	logits, err := m.eng.infer(enc)
	m.mu.Unlock()
	if err != nil {
		return nil, classifier.Wrap(m.name, err)
	}
	if len(logits) != len(m.labels) {
		return nil, classifier.Wrap(m.name,
			fmt.Errorf("got %d logits for %d labels", len(logits), len(m.labels)))
	}
	if m.activation == ActivationSigmoid {
		return sigmoid(logits), nil
	}
	return softmax(logits), nil
}

func softmax(logits []float32) []float64 {
	out := make([]float64, len(logits))
	maxLogit := math.Inf(-1)
	for _, l := range logits {
		maxLogit = math.Max(maxLogit, float64(l))
	}
	var sum float64
	for i, l := range logits {
		out[i] = math.Exp(float64(l) - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func sigmoid(logits []float32) []float64 {
	out := make([]float64, len(logits))
	for i, l := range logits {
		out[i] = 1 / (1 + math.Exp(-float64(l)))
	}
	return out
}

type modelConfig struct {
	ID2Label    map[string]string `json:"id2label"`
	ProblemType string            `json:"problem_type"`
	labels      []string
}

func loadConfig(path string) (*modelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*modelConfig, error) {
	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse model config: %w", err)
	}
	cfg.labels = make([]string, len(cfg.ID2Label))
	for k, v := range cfg.ID2Label {
		id, err := strconv.Atoi(k)
		if err != nil || id < 0 || id >= len(cfg.labels) {
			return nil, fmt.Errorf("parse model config: bad label id %q", k)
		}
		cfg.labels[id] = v
	}
	return &cfg, nil
}
