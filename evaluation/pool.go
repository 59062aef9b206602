//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package evaluation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-response-eval-go/record"
)

type candidateParam struct {
	idx       int
	ctx       context.Context
	reference string
	candidate record.TextRecord
	e         *Evaluator
	results   []candidateResult
	wg        *sync.WaitGroup
}

func (p *candidateParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.reference = ""
	p.candidate = record.TextRecord{}
	p.e = nil
	p.results = nil
	p.wg = nil
}

var candidateParamPool = &sync.Pool{
	New: func() any { return new(candidateParam) },
}

func createCandidatePool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*candidateParam)
		if !ok {
			panic("candidate pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			candidateParamPool.Put(param)
		}()
		param.results[param.idx] = param.e.scoreCandidate(param.ctx, param.idx, param.reference, param.candidate)
	})
	if err != nil {
		return nil, fmt.Errorf("create candidate pool: %w", err)
	}
	return pool, nil
}
