//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"

	cacheredis "trpc.group/trpc-go/trpc-response-eval-go/cache/redis"
	"trpc.group/trpc-go/trpc-response-eval-go/classifier/onnx"
	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
	resultinmemory "trpc.group/trpc-go/trpc-response-eval-go/evalresult/inmemory"
	resultmysql "trpc.group/trpc-go/trpc-response-eval-go/evalresult/mysql"
	"trpc.group/trpc-go/trpc-response-eval-go/evaluation"
	"trpc.group/trpc-go/trpc-response-eval-go/internal/syllable"
	"trpc.group/trpc-go/trpc-response-eval-go/lexicon"
	"trpc.group/trpc-go/trpc-response-eval-go/log"
)

// Components are the backends built from a Config.
type Components struct {
	// Options configure an evaluation.Evaluator with the built backends.
	Options []evaluation.Option
	// ResultManager is nil when result storage is disabled.
	ResultManager evalresult.Manager

	closers []func() error
}

// Close releases every backend in reverse creation order.
func (c *Components) Close() error {
	var merr *multierror.Error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	c.closers = nil
	return merr.ErrorOrNil()
}

func (c *Components) add(opt evaluation.Option, closer func() error) {
	c.Options = append(c.Options, opt)
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
}

// Build applies the log settings and creates the configured backends.
// On failure every backend created so far is released.
func (c *Config) Build() (*Components, error) {
	log.SetLevel(c.Log.Level)
	if c.Log.Format == log.EncodingJSON {
		log.Default = log.New(os.Stderr, log.EncodingJSON)
	}
	comps := &Components{}
	if err := c.build(comps); err != nil {
		_ = comps.Close()
		return nil, err
	}
	return comps, nil
}

func (c *Config) build(comps *Components) error {
	comps.add(evaluation.WithHumanTag(c.HumanTag), nil)
	comps.add(evaluation.WithParallelism(c.Parallelism), nil)
	comps.add(evaluation.WithSkipFailedCandidates(c.SkipFailedCandidates), nil)
	comps.add(evaluation.WithClassifierTimeout(c.Classifier.Timeout), nil)

	if c.RegistryFile != "" {
		reg, err := lexicon.LoadFile(c.RegistryFile)
		if err != nil {
			return fmt.Errorf("loading registry: %w", err)
		}
		comps.add(evaluation.WithRegistry(reg), nil)
	}
	if c.SyllableDictFile != "" {
		d, err := syllable.LoadFile(c.SyllableDictFile)
		if err != nil {
			return fmt.Errorf("loading syllable dictionary: %w", err)
		}
		comps.add(evaluation.WithSyllableDictionary(d), nil)
	}

	if c.Cache.Type == BackendRedis {
		var opts []cacheredis.Option
		if c.Cache.RedisPrefix != "" {
			opts = append(opts, cacheredis.WithPrefix(c.Cache.RedisPrefix))
		}
		if c.Cache.TTL > 0 {
			opts = append(opts, cacheredis.WithTTL(c.Cache.TTL))
		}
		rc, err := cacheredis.New(c.Cache.RedisURL, opts...)
		if err != nil {
			return fmt.Errorf("creating redis cache: %w", err)
		}
		comps.add(evaluation.WithCache(rc), rc.Close)
	}

	modelOpts := []onnx.Option{onnx.WithMaxLength(c.Classifier.MaxLength)}
	if c.Classifier.LibraryPath != "" {
		modelOpts = append(modelOpts, onnx.WithLibraryPath(c.Classifier.LibraryPath))
	}
	if c.Classifier.EmotionModelDir != "" {
		m, err := onnx.New(c.Classifier.EmotionModelDir, append(modelOpts, onnx.WithName("emotion"))...)
		if err != nil {
			return fmt.Errorf("loading emotion model: %w", err)
		}
		comps.add(evaluation.WithEmotionClassifier(m), m.Close)
	}
	if c.Classifier.Ethical == EthicalClassifier {
		m, err := onnx.New(c.Classifier.EthicalModelDir, append(modelOpts,
			onnx.WithName("ethical"), onnx.WithPositiveLabel(c.Classifier.EthicalPositive))...)
		if err != nil {
			return fmt.Errorf("loading ethical model: %w", err)
		}
		comps.add(evaluation.WithEthicalClassifier(m), m.Close)
	}

	switch c.Result.Type {
	case BackendInMemory:
		comps.ResultManager = resultinmemory.New()
	case BackendMySQL:
		mgr, err := resultmysql.New(
			resultmysql.WithMySQLClientDSN(c.Result.MySQLDSN),
			resultmysql.WithMySQLInstance(c.Result.MySQLInstance),
			resultmysql.WithTablePrefix(c.Result.TablePrefix),
			resultmysql.WithSkipDBInit(c.Result.SkipDBInit),
		)
		if err != nil {
			return fmt.Errorf("creating mysql result manager: %w", err)
		}
		comps.ResultManager = mgr
	}
	if comps.ResultManager != nil {
		comps.add(evaluation.WithResultManager(comps.ResultManager), comps.ResultManager.Close)
	}
	return nil
}
