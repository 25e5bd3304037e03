// ChurnLab - Customer Churn Modeling Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/churnlab

package runstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/churnlab/internal/config"
	"github.com/tomtom215/churnlab/internal/pipeline"
)

// ErrRunNotFound is returned when no stored run matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

// Summary is one stored run's headline numbers, cheap to list.
type Summary struct {
	RunID      string
	StartedAt  time.Time
	DataPath   string
	Rows       int
	Accuracy   float64
	AUC        float64
	F1         float64
	DurationMS int64
}

// SaveRun records a completed run. The configuration snapshot is
// optional; passing nil stores an empty document.
func (s *Store) SaveRun(ctx context.Context, res *pipeline.Result, cfg *config.Config) error {
	if res == nil {
		return errors.New("no result to save")
	}

	report, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	snapshot := []byte("{}")
	if cfg != nil {
		if snapshot, err = json.Marshal(cfg); err != nil {
			return fmt.Errorf("failed to encode config snapshot: %w", err)
		}
	}

	query := `INSERT INTO runs (
		run_id, started_at, duration_ms, data_path,
		row_count, train_count, test_count, feature_count,
		accuracy, auc, f1, config, report
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.conn.ExecContext(ctx, query,
		res.RunID, res.StartedAt, res.DurationMS, res.DataPath,
		res.Rows, res.TrainRows, res.TestRows, len(res.Features),
		res.Metrics.Accuracy, res.Metrics.AUC, res.Metrics.F1,
		string(snapshot), string(report),
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// ListRuns retrieves stored run summaries, newest first. A non-positive
// limit lists up to 50 runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT run_id, started_at, data_path, row_count, accuracy, auc, f1, duration_ms
	FROM runs
	ORDER BY started_at DESC
	LIMIT ?`

	rows, err := s.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Summary, 0)
	for rows.Next() {
		var r Summary
		if err := rows.Scan(&r.RunID, &r.StartedAt, &r.DataPath, &r.Rows,
			&r.Accuracy, &r.AUC, &r.F1, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun retrieves one stored run's full result.
func (s *Store) GetRun(ctx context.Context, runID string) (*pipeline.Result, error) {
	query := `SELECT report FROM runs WHERE run_id = ?`

	var report any // DuckDB returns JSON as map[string]any
	err := s.conn.QueryRowContext(ctx, query, runID).Scan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	var res pipeline.Result
	if err := json.Unmarshal(jsonToBytes(report), &res); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &res, nil
}

// jsonToBytes converts a DuckDB JSON value to raw JSON text.
func jsonToBytes(v any) []byte {
	switch val := v.(type) {
	case nil:
		return []byte("{}")
	case string:
		return []byte(val)
	case []byte:
		return val
	default:
		// DuckDB may return parsed JSON as map[string]any
		data, err := json.Marshal(val)
		if err != nil {
			return []byte("{}")
		}
		return data
	}
}
