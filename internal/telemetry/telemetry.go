//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry holds the OpenTelemetry instruments used while scoring.
// Instruments default to no-op implementations until a provider is installed.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// InstrumentName is the instrumentation scope of tracers and meters.
const InstrumentName = "trpc.response.eval"

// Metric names.
const (
	MetricScorerDuration = "response_eval.scorer.duration"
	MetricCacheHit       = "response_eval.cache.hit"
	MetricCacheMiss      = "response_eval.cache.miss"
	MetricCandidateCnt   = "response_eval.candidate.count"
)

// Span and attribute keys.
const (
	SpanEvaluate  = "evaluate"
	SpanCandidate = "evaluate_candidate"
	SpanScorer    = "score"

	KeyScorer     = "response_eval.scorer"
	KeyResponder  = "response_eval.responder"
	KeyIndex      = "response_eval.candidate.index"
	KeyCandidates = "response_eval.candidate.total"
	KeyCache      = "response_eval.cache"
)

var (
	// Tracer starts evaluation spans.
	Tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer(InstrumentName)

	scorerDuration metric.Float64Histogram = metricnoop.Float64Histogram{}
	cacheHit       metric.Int64Counter     = metricnoop.Int64Counter{}
	cacheMiss      metric.Int64Counter     = metricnoop.Int64Counter{}
	candidateCnt   metric.Int64Counter     = metricnoop.Int64Counter{}
)

// InitTracerProvider installs the tracer provider used for evaluation spans.
func InitTracerProvider(tp trace.TracerProvider) {
	Tracer = tp.Tracer(InstrumentName)
}

// InitMeterProvider creates the evaluation instruments from mp.
func InitMeterProvider(mp metric.MeterProvider) error {
	meter := mp.Meter(InstrumentName)
	h, err := meter.Float64Histogram(
		MetricScorerDuration,
		metric.WithDescription("Duration of a single scorer call"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricScorerDuration, err)
	}
	hit, err := meter.Int64Counter(
		MetricCacheHit,
		metric.WithDescription("Ethical alignment cache hits"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricCacheHit, err)
	}
	miss, err := meter.Int64Counter(
		MetricCacheMiss,
		metric.WithDescription("Ethical alignment cache misses"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricCacheMiss, err)
	}
	cnt, err := meter.Int64Counter(
		MetricCandidateCnt,
		metric.WithDescription("Candidates evaluated"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("failed to create metric %s: %w", MetricCandidateCnt, err)
	}
	scorerDuration, cacheHit, cacheMiss, candidateCnt = h, hit, miss, cnt
	return nil
}

// RecordScorerDuration records the latency of one scorer call.
func RecordScorerDuration(ctx context.Context, scorer string, d time.Duration, err error) {
	scorerDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(KeyScorer, scorer),
		attribute.Bool("error", err != nil),
	))
}

// RecordCacheLookup counts a cache hit or miss for the named cache.
func RecordCacheLookup(ctx context.Context, cache string, hit bool) {
	opt := metric.WithAttributes(attribute.String(KeyCache, cache))
	if hit {
		cacheHit.Add(ctx, 1, opt)
		return
	}
	cacheMiss.Add(ctx, 1, opt)
}

// IncCandidateCnt counts one evaluated candidate.
func IncCandidateCnt(ctx context.Context, failed bool) {
	candidateCnt.Add(ctx, 1, metric.WithAttributes(attribute.Bool("error", failed)))
}

// EndSpan records err on span, if any, and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
