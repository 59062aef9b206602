//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package evaluation scores candidate responses against a single human
// reference along every registered dimension.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trpc.group/trpc-go/trpc-response-eval-go/classifier"
	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/telemetry"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/log"
	"trpc.group/trpc-go/trpc-response-eval-go/record"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/complexity"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/ethical"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/inclusivity"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/lexical"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/registry"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/semantic"
	"trpc.group/trpc-go/trpc-response-eval-go/scorer/sentiment"
)

// Row is the score profile of one candidate.
type Row = evalresult.Row

var (
	// ErrNoRecords is returned when there is nothing to evaluate.
	ErrNoRecords = errors.New("no records to evaluate")
	// ErrNoReference is returned when no record carries the human tag.
	ErrNoReference = errors.New("no reference record")
	// ErrMultipleReferences is returned when several records carry the human tag.
	ErrMultipleReferences = errors.New("multiple reference records")
)

// ScoreError reports a scorer failure on one candidate.
type ScoreError struct {
	// Scorer is the dimension name.
	Scorer string
	// Responder is the platform of the candidate.
	Responder string
	// Index is the position of the candidate among the candidates.
	Index int
	Err   error
}

// Error implements error.
func (e *ScoreError) Error() string {
	return fmt.Sprintf("scorer %s failed on candidate %d (%s): %v", e.Scorer, e.Index, e.Responder, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScoreError) Unwrap() error { return e.Err }

type candidateResult struct {
	row Row
	err error
}

type namedScorer struct {
	name string
	s    scorer.Scorer
}

// Evaluator runs the scorers over a batch of records.
type Evaluator struct {
	opts     options
	registry *lexicon.Registry
	scorers  registry.Registry
	ethical  *ethical.Cached
	ordered  []namedScorer
	pool     *ants.PoolWithFunc
}

// New creates an Evaluator. Sentiment alignment needs an emotion classifier
// unless its scorer is replaced with WithScorer.
func New(opt ...Option) (*Evaluator, error) {
	opts := newOptions(opt...)
	if opts.parallelism <= 0 {
		return nil, errors.New("parallelism must be greater than 0")
	}
	if opts.humanTag == "" {
		return nil, errors.New("human tag is empty")
	}
	reg := opts.registry
	if reg == nil {
		reg = lexicon.Default()
	}
	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("validate registry: %w", err)
	}
	e := &Evaluator{opts: *opts, registry: reg, scorers: registry.New()}
	if err := e.registerScorers(); err != nil {
		return nil, err
	}
	if opts.parallelism > 1 {
		pool, err := createCandidatePool(opts.parallelism)
		if err != nil {
			return nil, err
		}
		e.pool = pool
	}
	return e, nil
}

func (e *Evaluator) registerScorers() error {
	inner := e.opts.ethical
	switch {
	case inner != nil:
	case e.opts.ethicalClassifier != nil:
		inner = ethical.NewClassifierBased(
			classifier.BinaryWithTimeout(e.opts.ethicalClassifier, e.opts.classifierTimeout))
	default:
		inner = ethical.NewRuleBased(e.registry)
	}
	e.ethical = ethical.NewCached(inner, e.opts.cache)

	var complexOpts []complexity.Option
	if e.opts.syllables != nil {
		complexOpts = append(complexOpts, complexity.WithDictionary(e.opts.syllables))
	}
	defaults := map[string]scorer.Scorer{
		scorer.NameLexicalOverlap:    lexical.New(e.registry),
		scorer.NameSemanticAlignment: semantic.New(e.registry),
		scorer.NameEthicalAlignment:  scorer.IgnoreReference(e.ethical),
		scorer.NameInclusivity:       scorer.IgnoreReference(inclusivity.New(e.registry)),
		scorer.NameComplexity:        scorer.IgnoreReference(complexity.New(e.registry, complexOpts...)),
	}
	if e.opts.emotion != nil {
		defaults[scorer.NameSentimentAlignment] = sentiment.New(
			e.opts.emotion, e.registry, sentiment.WithTimeout(e.opts.classifierTimeout))
	}
	for name, s := range e.opts.scorers {
		defaults[name] = s
	}
	for name, s := range defaults {
		if err := e.scorers.Register(name, s); err != nil {
			return fmt.Errorf("register scorer %s: %w", name, err)
		}
	}
	for _, name := range scorer.Names() {
		s, err := e.scorers.Get(name)
		if err != nil {
			if name == scorer.NameSentimentAlignment {
				return errors.New("emotion classifier is nil")
			}
			return err
		}
		e.ordered = append(e.ordered, namedScorer{name: name, s: s})
	}
	return nil
}

// Close releases the worker pool.
func (e *Evaluator) Close() error {
	if e.pool != nil {
		e.pool.Release()
	}
	return nil
}

// ClearCache empties the ethical alignment cache.
func (e *Evaluator) ClearCache(ctx context.Context) error {
	return e.ethical.Clear(ctx)
}

// Scorers returns the names of the registered scorers.
func (e *Evaluator) Scorers() []string {
	return e.scorers.List()
}

// Evaluate scores every non-reference record against the reference and
// returns one row per candidate in input order. By default any failure
// aborts the run; WithSkipFailedCandidates returns the successful rows with
// the aggregated failures.
func (e *Evaluator) Evaluate(ctx context.Context, records []record.TextRecord) ([]Row, error) {
	_, rows, err := e.evaluate(ctx, records)
	return rows, err
}

func (e *Evaluator) evaluate(ctx context.Context, records []record.TextRecord) (record.TextRecord, []Row, error) {
	ref, candidates, err := e.split(records)
	if err != nil {
		return record.TextRecord{}, nil, err
	}
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.SpanEvaluate,
		trace.WithAttributes(attribute.Int(telemetry.KeyCandidates, len(candidates))))
	log.Infof("evaluation start: %d candidates, parallelism %d", len(candidates), e.opts.parallelism)
	start := time.Now()

	var results []candidateResult
	if e.pool != nil {
		results = e.evaluateParallel(ctx, ref.Text, candidates)
	} else {
		results = e.evaluateSerial(ctx, ref.Text, candidates)
	}
	rows, err := e.collect(ctx, results)
	telemetry.EndSpan(span, err)
	log.Infof("evaluation end: %d rows in %s", len(rows), time.Since(start))
	return ref, rows, err
}

func (e *Evaluator) split(records []record.TextRecord) (record.TextRecord, []record.TextRecord, error) {
	if len(records) == 0 {
		return record.TextRecord{}, nil, ErrNoRecords
	}
	var (
		ref        record.TextRecord
		refs       int
		candidates = make([]record.TextRecord, 0, len(records))
	)
	for _, r := range records {
		if r.Platform == e.opts.humanTag {
			ref = r
			refs++
			continue
		}
		candidates = append(candidates, r)
	}
	switch {
	case refs == 0:
		return record.TextRecord{}, nil, fmt.Errorf("%w tagged %q", ErrNoReference, e.opts.humanTag)
	case refs > 1:
		return record.TextRecord{}, nil, fmt.Errorf("%w: %d records tagged %q", ErrMultipleReferences, refs, e.opts.humanTag)
	}
	return ref, candidates, nil
}

func (e *Evaluator) evaluateSerial(ctx context.Context, reference string, candidates []record.TextRecord) []candidateResult {
	results := make([]candidateResult, len(candidates))
	for idx, c := range candidates {
		results[idx] = e.scoreCandidate(ctx, idx, reference, c)
	}
	return results
}

func (e *Evaluator) evaluateParallel(ctx context.Context, reference string, candidates []record.TextRecord) []candidateResult {
	results := make([]candidateResult, len(candidates))
	var wg sync.WaitGroup
	for idx, c := range candidates {
		wg.Add(1)
		param := candidateParamPool.Get().(*candidateParam)
		param.idx = idx
		param.ctx = ctx
		param.reference = reference
		param.candidate = c
		param.e = e
		param.results = results
		param.wg = &wg
		if err := e.pool.Invoke(param); err != nil {
			wg.Done()
			results[idx] = candidateResult{err: fmt.Errorf("submit candidate %d: %w", idx, err)}
			param.reset()
			candidateParamPool.Put(param)
		}
	}
	wg.Wait()
	return results
}

func (e *Evaluator) collect(ctx context.Context, results []candidateResult) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var merr *multierror.Error
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		rows = append(rows, r.row)
	}
	if err := merr.ErrorOrNil(); err != nil {
		if !e.opts.skipFailed {
			return nil, err
		}
		return rows, err
	}
	return rows, nil
}

func (e *Evaluator) scoreCandidate(ctx context.Context, idx int, reference string, c record.TextRecord) candidateResult {
	if err := ctx.Err(); err != nil {
		return candidateResult{err: err}
	}
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.SpanCandidate, trace.WithAttributes(
		attribute.Int(telemetry.KeyIndex, idx),
		attribute.String(telemetry.KeyResponder, c.Platform),
	))
	row := Row{Responder: c.Platform, Response: c.Text}
	var merr *multierror.Error
	for _, ns := range e.ordered {
		v, err := e.runScorer(ctx, ns, reference, c.Text)
		if err != nil {
			log.Warnf("candidate %d (%s): scorer %s failed: %v", idx, c.Platform, ns.name, err)
			merr = multierror.Append(merr, &ScoreError{
				Scorer:    ns.name,
				Responder: c.Platform,
				Index:     idx,
				Err:       err,
			})
			continue
		}
		if err := row.SetScore(ns.name, v); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	err := merr.ErrorOrNil()
	telemetry.IncCandidateCnt(ctx, err != nil)
	telemetry.EndSpan(span, err)
	return candidateResult{row: row, err: err}
}

func (e *Evaluator) runScorer(ctx context.Context, ns namedScorer, reference, candidate string) (float64, error) {
	ctx, span := telemetry.Tracer.Start(ctx, telemetry.SpanScorer,
		trace.WithAttributes(attribute.String(telemetry.KeyScorer, ns.name)))
	start := time.Now()
	v, err := ns.s.Score(ctx, reference, candidate)
	telemetry.RecordScorerDuration(ctx, ns.name, time.Since(start), err)
	telemetry.EndSpan(span, err)
	return v, err
}

// EvaluateResultSet evaluates records and wraps the rows in a result set,
// saving it when a result manager is configured. With
// WithSkipFailedCandidates a partial result set is returned together with
// the aggregated failures.
func (e *Evaluator) EvaluateResultSet(ctx context.Context, records []record.TextRecord) (*evalresult.ResultSet, error) {
	ref, rows, runErr := e.evaluate(ctx, records)
	if runErr != nil && rows == nil {
		return nil, runErr
	}
	rs := &evalresult.ResultSet{
		ID:              evalresult.NewID(),
		RegistryVersion: e.registry.Version,
		Reference:       ref,
		Rows:            rows,
		CreatedAt:       time.Now(),
	}
	rs.Name = rs.ID
	if e.opts.resultManager != nil {
		if _, err := e.opts.resultManager.Save(ctx, rs); err != nil {
			return nil, fmt.Errorf("save result set %s: %w", rs.ID, err)
		}
	}
	return rs, runErr
}
