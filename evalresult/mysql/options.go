//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import "time"

const defaultInitTimeout = 30 * time.Second

type options struct {
	dsn          string
	instanceName string
	skipDBInit   bool
	tablePrefix  string
	initTimeout  time.Duration
}

func newOptions(opt ...Option) *options {
	opts := &options{initTimeout: defaultInitTimeout}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the MySQL result set manager.
type Option func(*options)

// WithMySQLClientDSN sets the MySQL DSN connection string directly.
func WithMySQLClientDSN(dsn string) Option {
	return func(o *options) {
		o.dsn = dsn
	}
}

// WithMySQLInstance uses a MySQL instance registered with
// storage/mysql.RegisterMySQLInstance. The DSN takes priority when both are set.
func WithMySQLInstance(instanceName string) Option {
	return func(o *options) {
		o.instanceName = instanceName
	}
}

// WithSkipDBInit skips table creation.
func WithSkipDBInit(skip bool) Option {
	return func(o *options) {
		o.skipDBInit = skip
	}
}

// WithTablePrefix sets a prefix for the table name.
func WithTablePrefix(prefix string) Option {
	return func(o *options) {
		o.tablePrefix = prefix
	}
}

// WithInitTimeout sets the timeout for schema creation.
// Non-positive values keep the default.
func WithInitTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.initTimeout = timeout
		}
	}
}
