// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

// Package runstore persists run results in an embedded DuckDB file so
// past runs can be listed and compared. The store is opt-in and records
// reports only, never model weights. Each run occupies one row: headline
// numbers in scalar columns for cheap listing, the full result and the
// configuration snapshot as JSON documents.
package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/churnlab/internal/config"
	"github.com/tomtom215/churnlab/internal/logging"
)

// Store wraps the DuckDB connection holding the run history.
type Store struct {
	conn *sql.DB
	cfg  *config.StoreConfig
}

// New opens (or creates) the run store and initializes its schema.
func New(cfg *config.StoreConfig) (*Store, error) {
	if cfg == nil || cfg.Path == "" {
		return nil, errors.New("run store requires a database path")
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Ensure the parent directory exists for file-backed stores.
	if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", dbDir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}

	s := &Store{conn: conn, cfg: cfg}
	s.configureConnectionPool()

	if err := s.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize run store: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Run store opened")
	return s, nil
}

// configureConnectionPool sets connection pool parameters
func (s *Store) configureConnectionPool() {
	s.conn.SetMaxOpenConns(runtime.NumCPU())
	s.conn.SetMaxIdleConns(2)
	s.conn.SetConnMaxLifetime(time.Hour)
	s.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// createTables creates the runs table and its listing index.
func (s *Store) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			started_at TIMESTAMP NOT NULL,
			duration_ms BIGINT NOT NULL,
			data_path TEXT NOT NULL,

			-- Dataset shape
			row_count INTEGER NOT NULL,
			train_count INTEGER NOT NULL,
			test_count INTEGER NOT NULL,
			feature_count INTEGER NOT NULL,

			-- Headline metrics for listing without decoding the report
			accuracy DOUBLE NOT NULL,
			auc DOUBLE NOT NULL,
			f1 DOUBLE NOT NULL,

			-- Full documents
			config JSON DEFAULT '{}',
			report JSON NOT NULL,

			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// Close checkpoints and closes the store.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	// Flush the WAL so the file is complete on disk before closing.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint run store before close")
	}

	return s.conn.Close()
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
