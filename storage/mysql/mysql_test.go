//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

package mysql

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterMySQLInstance_Append verifies repeated registrations append options.
func TestRegisterMySQLInstance_Append(t *testing.T) {
	RegisterMySQLInstance("test-append", WithClientBuilderDSN("dsn1"))
	RegisterMySQLInstance("test-append", WithClientBuilderDSN("dsn2"), WithMaxOpenConns(5))

	opts, ok := GetMySQLInstance("test-append")
	require.True(t, ok)
	assert.Len(t, opts, 3)

	o := &ClientBuilderOpts{}
	for _, opt := range opts {
		opt(o)
	}
	assert.Equal(t, "dsn2", o.DSN)
	assert.Equal(t, 5, o.MaxOpenConns)

	_, ok = GetMySQLInstance("missing")
	assert.False(t, ok)
}

// TestClientBuilderOpts verifies every option.
func TestClientBuilderOpts(t *testing.T) {
	o := &ClientBuilderOpts{}
	for _, opt := range []ClientBuilderOpt{
		WithClientBuilderDSN("dsn"),
		WithMaxOpenConns(10),
		WithMaxIdleConns(3),
		WithConnMaxLifetime(time.Minute),
	} {
		opt(o)
	}
	assert.Equal(t, ClientBuilderOpts{
		DSN: "dsn", MaxOpenConns: 10, MaxIdleConns: 3, ConnMaxLifetime: time.Minute,
	}, *o)
}

// TestDefaultClientBuilder_EmptyDSN verifies an empty DSN is rejected.
func TestDefaultClientBuilder_EmptyDSN(t *testing.T) {
	_, err := DefaultClientBuilder()
	assert.EqualError(t, err, "mysql: dsn is empty")
}

// TestDefaultClientBuilder_PingFailure verifies unreachable servers are reported.
func TestDefaultClientBuilder_PingFailure(t *testing.T) {
	_, err := DefaultClientBuilder(WithClientBuilderDSN("user:pass@tcp(127.0.0.1:1)/db?timeout=100ms"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping failed")
}

// TestBuildClient verifies DSN and instance resolution.
func TestBuildClient(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	var gotDSN string
	old := GetClientBuilder()
	SetClientBuilder(func(builderOpts ...ClientBuilderOpt) (Client, error) {
		o := &ClientBuilderOpts{}
		for _, opt := range builderOpts {
			opt(o)
		}
		gotDSN = o.DSN
		if o.DSN == "" {
			return nil, errors.New("empty")
		}
		return db, nil
	})
	t.Cleanup(func() { SetClientBuilder(old) })

	c, err := BuildClient("direct", "ignored")
	require.NoError(t, err)
	assert.Equal(t, "direct", gotDSN)
	assert.Same(t, db, c)

	RegisterMySQLInstance("test-build", WithClientBuilderDSN("from-instance"))
	_, err = BuildClient("", "test-build")
	require.NoError(t, err)
	assert.Equal(t, "from-instance", gotDSN)

	_, err = BuildClient("", "unknown-instance")
	assert.Error(t, err)

	mock.ExpectClose()
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
