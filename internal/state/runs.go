package state

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danieldeleo/professional-services-data-validator/internal/config"
	"github.com/danieldeleo/professional-services-data-validator/internal/report"
)

// Run is the persisted header of one validation run.
type Run struct {
	ID              string
	ValidationType  string
	TableName       string
	TargetTableName string
	StartedAt       time.Time
	FinishedAt      time.Time
	Passed          int
	Failed          int
	Status          string
}

// SaveReport persists a validation report and its field results.
func (s *Store) SaveReport(ctx context.Context, cfg *config.ValidationConfig, rep *report.Report) error {
	if s.db == nil {
		return fmt.Errorf("run store not opened")
	}

	status := report.StatusSuccess
	if !rep.Success() {
		status = report.StatusFail
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO validation_runs
			(id, validation_type, table_name, target_table_name, started_at, finished_at, passed, failed, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RunID, string(cfg.Type), cfg.TableName, cfg.TargetTable(),
		rep.StartedAt, rep.FinishedAt, rep.Passed(), rep.Failed(), string(status))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, fr := range rep.Results {
		var pctDiff any
		if fr.PctDiff != nil {
			pctDiff = *fr.PctDiff
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO validation_results
				(run_id, grp, field, source_value, target_value, pct_diff, status)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rep.RunID, fr.Group, fr.Alias,
			valueText(fr.SourceValue), valueText(fr.TargetValue),
			pctDiff, string(fr.Status))
		if err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug("validation run saved",
		"run_id", rep.RunID, "passed", rep.Passed(), "failed", rep.Failed())
	return nil
}

// GetRun retrieves one run header by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("run store not opened")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, validation_type, table_name, target_table_name, started_at, finished_at, passed, failed, status
		FROM validation_runs WHERE id = ?`, id)

	var r Run
	err := row.Scan(&r.ID, &r.ValidationType, &r.TableName, &r.TargetTableName,
		&r.StartedAt, &r.FinishedAt, &r.Passed, &r.Failed, &r.Status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	return &r, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("run store not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, validation_type, table_name, target_table_name, started_at, finished_at, passed, failed, status
		FROM validation_runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.ValidationType, &r.TableName, &r.TargetTableName,
			&r.StartedAt, &r.FinishedAt, &r.Passed, &r.Failed, &r.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// valueText renders a comparison value for storage; nil stays NULL.
func valueText(v any) any {
	if v == nil {
		return nil
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
