//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql builds MySQL clients for the persistence backends and keeps
// a registry of named instances.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const defaultPingTimeout = 5 * time.Second

var (
	registryMu sync.RWMutex
	registry   = make(map[string][]ClientBuilderOpt)
)

// Client is the subset of *sql.DB used by the persistence backends.
type Client interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
	Close() error
}

// ClientBuilder creates a Client from builder options.
type ClientBuilder func(builderOpts ...ClientBuilderOpt) (Client, error)

var globalBuilder ClientBuilder = DefaultClientBuilder

// SetClientBuilder replaces the builder used by BuildClient.
func SetClientBuilder(builder ClientBuilder) {
	globalBuilder = builder
}

// GetClientBuilder returns the builder used by BuildClient.
func GetClientBuilder() ClientBuilder {
	return globalBuilder
}

// DefaultClientBuilder opens a *sql.DB with the mysql driver and pings it.
func DefaultClientBuilder(builderOpts ...ClientBuilderOpt) (Client, error) {
	o := &ClientBuilderOpts{}
	for _, opt := range builderOpts {
		opt(o)
	}
	if o.DSN == "" {
		return nil, errors.New("mysql: dsn is empty")
	}
	db, err := sql.Open("mysql", o.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open connection: %w", err)
	}
	if o.MaxOpenConns > 0 {
		db.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		db.SetMaxIdleConns(o.MaxIdleConns)
	}
	if o.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(o.ConnMaxLifetime)
	}
	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping failed: %w", err)
	}
	return db, nil
}

// ClientBuilderOpt configures a client.
type ClientBuilderOpt func(*ClientBuilderOpts)

// ClientBuilderOpts are the client settings.
type ClientBuilderOpts struct {
	// DSN format: [username[:password]@][protocol[(address)]]/dbname[?params].
	// Persistence backends need parseTime=true.
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// WithClientBuilderDSN sets the data source name.
func WithClientBuilderDSN(dsn string) ClientBuilderOpt {
	return func(opts *ClientBuilderOpts) { opts.DSN = dsn }
}

// WithMaxOpenConns caps open connections.
func WithMaxOpenConns(n int) ClientBuilderOpt {
	return func(opts *ClientBuilderOpts) { opts.MaxOpenConns = n }
}

// WithMaxIdleConns caps idle connections.
func WithMaxIdleConns(n int) ClientBuilderOpt {
	return func(opts *ClientBuilderOpts) { opts.MaxIdleConns = n }
}

// WithConnMaxLifetime limits connection reuse.
func WithConnMaxLifetime(d time.Duration) ClientBuilderOpt {
	return func(opts *ClientBuilderOpts) { opts.ConnMaxLifetime = d }
}

// RegisterMySQLInstance registers options under name. Repeated calls append.
func RegisterMySQLInstance(name string, opts ...ClientBuilderOpt) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = append(registry[name], opts...)
}

// GetMySQLInstance returns the options registered under name.
func GetMySQLInstance(name string) ([]ClientBuilderOpt, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	opts, ok := registry[name]
	return opts, ok
}

// BuildClient builds a client from dsn, or from the instance registered
// under instanceName when dsn is empty.
func BuildClient(dsn, instanceName string) (Client, error) {
	builderOpts := []ClientBuilderOpt{WithClientBuilderDSN(dsn)}
	if dsn == "" && instanceName != "" {
		var ok bool
		if builderOpts, ok = GetMySQLInstance(instanceName); !ok {
			return nil, fmt.Errorf("mysql instance %s not found", instanceName)
		}
	}
	return GetClientBuilder()(builderOpts...)
}
