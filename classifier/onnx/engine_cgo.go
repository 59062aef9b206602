//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

//go:build cgo

package onnx

import (
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	envOnce sync.Once
	envErr  error
)

func initEnvironment(libraryPath string) error {
	envOnce.Do(func() {
		if libraryPath == "" {
			libraryPath = os.Getenv("ONNX_RUNTIME_LIB")
		}
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			envErr = fmt.Errorf("failed to initialize ONNX Runtime: %w", err)
		}
	})
	return envErr
}

type ortEngine struct {
	session    *ort.DynamicAdvancedSession
	inputNames []string
}

func newEngine(modelPath, libraryPath string) (engine, error) {
	if err := initEnvironment(libraryPath); err != nil {
		return nil, err
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file not found: %s", modelPath)
	}
	inputInfo, outputInfo, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model %s: %w", modelPath, err)
	}
	if len(outputInfo) == 0 {
		return nil, fmt.Errorf("model %s has no outputs", modelPath)
	}
	inputNames := make([]string, len(inputInfo))
	for i, info := range inputInfo {
		inputNames[i] = info.Name
	}
	session, err := ort.NewDynamicAdvancedSession(modelPath, inputNames,
		[]string{outputInfo[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ORT session: %w", err)
	}
	return &ortEngine{session: session, inputNames: inputNames}, nil
}

func (e *ortEngine) infer(enc *encoding) ([]float32, error) {
	shape := ort.NewShape(1, int64(len(enc.ids)))
	inputs := make([]ort.Value, len(e.inputNames))
	defer func() {
		for _, v := range inputs {
			if v != nil {
				v.Destroy()
			}
		}
	}()
	for i, name := range e.inputNames {
		var data []int64
		switch name {
		case "input_ids":
			data = enc.ids
		case "attention_mask":
			data = enc.mask
		case "token_type_ids":
			data = enc.typeIDs
		default:
			return nil, fmt.Errorf("unsupported model input: %s", name)
		}
		t, err := ort.NewTensor(shape, data)
		if err != nil {
			return nil, fmt.Errorf("failed to create ORT tensor for %s: %w", name, err)
		}
		inputs[i] = t
	}

	outputs := []ort.Value{nil}
	if err := e.session.Run(inputs, outputs); err != nil {
		return nil, fmt.Errorf("run failed: %w", err)
	}
	defer outputs[0].Destroy()
	logits, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unsupported output tensor type %T", outputs[0])
	}
	return append([]float32(nil), logits.GetData()...), nil
}

func (e *ortEngine) close() error {
	return e.session.Destroy()
}
