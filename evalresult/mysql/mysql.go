//
// Tencent is pleased to support the open source community by making trpc-agent-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-agent-go is licensed under the Apache License Version 2.0.
//
//

// Package mysql provides a MySQL-backed result set manager.
package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"trpc.group/trpc-go/trpc-response-eval-go/evalresult"
	"trpc.group/trpc-go/trpc-response-eval-go/record"
	storage "trpc.group/trpc-go/trpc-response-eval-go/storage/mysql"
)

// TableName is the unprefixed result set table name.
const TableName = "response_eval_result_sets"

const sqlCreateTable = `
	CREATE TABLE IF NOT EXISTS {{TABLE_NAME}} (
		id BIGINT NOT NULL AUTO_INCREMENT,
		result_set_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		registry_version VARCHAR(64) NOT NULL DEFAULT '',
		reference JSON NOT NULL,
		result_rows JSON NOT NULL,
		created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
		updated_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6),
		PRIMARY KEY (id),
		UNIQUE KEY uniq_result_set_id (result_set_id),
		KEY idx_created_at (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

var _ evalresult.Manager = (*manager)(nil)

type manager struct {
	opts  options
	db    storage.Client
	table string
}

// New creates a MySQL-backed result set manager.
func New(opts ...Option) (evalresult.Manager, error) {
	options := newOptions(opts...)
	db, err := storage.BuildClient(options.dsn, options.instanceName)
	if err != nil {
		return nil, fmt.Errorf("create mysql client failed: %w", err)
	}
	m := &manager{
		opts:  *options,
		db:    db,
		table: options.tablePrefix + TableName,
	}
	if !options.skipDBInit {
		ctx, cancel := context.WithTimeout(context.Background(), options.initTimeout)
		defer cancel()
		if err := m.ensureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init database failed: %w", err)
		}
	}
	return m, nil
}

func (m *manager) ensureSchema(ctx context.Context) error {
	query := strings.ReplaceAll(sqlCreateTable, "{{TABLE_NAME}}", m.table)
	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", m.table, err)
	}
	return nil
}

// Close implements evalresult.Manager.
func (m *manager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

// Save upserts a result set into MySQL.
func (m *manager) Save(ctx context.Context, rs *evalresult.ResultSet) (string, error) {
	if rs == nil {
		return "", evalresult.ErrNilResultSet
	}
	id := rs.ID
	if id == "" {
		id = evalresult.NewID()
	}
	name := rs.Name
	if name == "" {
		name = id
	}
	createdAt := rs.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	rows := rs.Rows
	if rows == nil {
		rows = []evalresult.Row{}
	}
	rowsPayload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("marshal rows: %w", err)
	}
	refPayload, err := json.Marshal(rs.Reference)
	if err != nil {
		return "", fmt.Errorf("marshal reference: %w", err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (result_set_id, name, registry_version, reference, result_rows, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   name = VALUES(name),
		   registry_version = VALUES(registry_version),
		   reference = VALUES(reference),
		   result_rows = VALUES(result_rows),
		   updated_at = CURRENT_TIMESTAMP(6)`,
		m.table,
	)
	if _, err := m.db.ExecContext(ctx, query, id, name, rs.RegistryVersion, refPayload, rowsPayload, createdAt); err != nil {
		return "", fmt.Errorf("store result set %s: %w", id, err)
	}
	return id, nil
}

// Get loads a result set from MySQL.
func (m *manager) Get(ctx context.Context, id string) (*evalresult.ResultSet, error) {
	if id == "" {
		return nil, errors.New("result set id is empty")
	}
	var (
		name        string
		version     string
		refPayload  []byte
		rowsPayload []byte
		createdAt   time.Time
	)
	query := fmt.Sprintf(
		"SELECT name, registry_version, reference, result_rows, created_at FROM %s WHERE result_set_id = ?",
		m.table,
	)
	err := m.db.QueryRowContext(ctx, query, id).Scan(&name, &version, &refPayload, &rowsPayload, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("result set %s not found: %w", id, os.ErrNotExist)
		}
		return nil, fmt.Errorf("load result set %s: %w", id, err)
	}
	var ref record.TextRecord
	if err := json.Unmarshal(refPayload, &ref); err != nil {
		return nil, fmt.Errorf("unmarshal reference %s: %w", id, err)
	}
	var rows []evalresult.Row
	if err := json.Unmarshal(rowsPayload, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal rows %s: %w", id, err)
	}
	if rows == nil {
		rows = []evalresult.Row{}
	}
	return &evalresult.ResultSet{
		ID:              id,
		Name:            name,
		RegistryVersion: version,
		Reference:       ref,
		Rows:            rows,
		CreatedAt:       createdAt,
	}, nil
}

// List lists result set IDs, newest first.
func (m *manager) List(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf("SELECT result_set_id FROM %s ORDER BY created_at DESC", m.table)
	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list result sets: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan result set id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list result sets: %w", err)
	}
	return ids, nil
}
