package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/emberkeep/spritebank/internal/storage"
)

// AppendImportRun records one asset-pipeline execution in the audit log.
func (s *Store) AppendImportRun(ctx context.Context, run storage.ImportRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	run.ID = strings.TrimSpace(run.ID)
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	run.Source = strings.TrimSpace(run.Source)
	if run.Source == "" {
		return fmt.Errorf("run source is required")
	}
	if run.StartedAt.IsZero() {
		return fmt.Errorf("run start time is required")
	}
	var finishedAt sql.NullInt64
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullInt64{Int64: toMillis(run.FinishedAt), Valid: true}
	}
	_, err := s.sqlDB.ExecContext(ctx, `
		INSERT INTO import_runs (
			run_id, source, started_at, finished_at,
			packs_imported, animations_imported, effects_imported, dry_run
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, toMillis(run.StartedAt), finishedAt,
		run.PacksImported, run.AnimationsImported, run.EffectsImported,
		run.DryRun)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append import run: %w", err)
	}
	return nil
}

// ListImportRuns returns the most recent import runs, newest first. A
// limit of zero or less returns every run.
func (s *Store) ListImportRuns(ctx context.Context, limit int) ([]storage.ImportRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	query := `
		SELECT run_id, source, started_at, finished_at,
			packs_imported, animations_imported, effects_imported, dry_run
		FROM import_runs
		ORDER BY started_at DESC, run_id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()

	var runs []storage.ImportRun
	for rows.Next() {
		var run storage.ImportRun
		var startedAt int64
		var finishedAt sql.NullInt64
		if err := rows.Scan(&run.ID, &run.Source, &startedAt, &finishedAt,
			&run.PacksImported, &run.AnimationsImported, &run.EffectsImported,
			&run.DryRun); err != nil {
			return nil, fmt.Errorf("scan import run: %w", err)
		}
		run.StartedAt = fromMillis(startedAt)
		if finishedAt.Valid {
			run.FinishedAt = fromMillis(finishedAt.Int64)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import runs: %w", err)
	}
	return runs, nil
}
