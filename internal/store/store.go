package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ndmitriev/caseline/internal/model"
)

// Store persists analysis reports locally so past runs can be listed and
// compared without re-analyzing the case material.
type Store struct {
	db *sql.DB
}

// RunSummary is one row of run history
type RunSummary struct {
	RunID            string    `json:"run_id"`
	CaseID           string    `json:"case_id"`
	Engine           string    `json:"engine"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
	EventCount       int       `json:"event_count"`
	ConflictCount    int       `json:"conflict_count"`
	FlaggedInsights  int       `json:"flagged_insights"`
	CriticalFindings int       `json:"critical_findings"`
}

// Open opens or creates the report database at the given path
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id            TEXT PRIMARY KEY,
		case_id           TEXT NOT NULL,
		engine            TEXT NOT NULL,
		analyzed_at       TEXT NOT NULL,
		event_count       INTEGER NOT NULL DEFAULT 0,
		conflict_count    INTEGER NOT NULL DEFAULT 0,
		flagged_insights  INTEGER NOT NULL DEFAULT 0,
		critical_findings INTEGER NOT NULL DEFAULT 0,
		report            TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_case ON runs(case_id, analyzed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_analyzed ON runs(analyzed_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists one complete report
func (s *Store) Save(ctx context.Context, report *model.AnalysisReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	flagged := 0
	for _, in := range report.Insights {
		if in.FlaggedAsGuiltyKnowledge {
			flagged++
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs
		(run_id, case_id, engine, analyzed_at, event_count, conflict_count, flagged_insights, critical_findings, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.Meta.RunID,
		report.Meta.CaseID,
		report.Meta.Engine,
		report.Meta.AnalyzedAt.UTC().Format(time.RFC3339),
		len(report.Events),
		len(report.Conflicts),
		flagged,
		len(report.CriticalFindings),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	return nil
}

// List returns run history, newest first. An empty caseID lists every case;
// limit 0 means no limit.
func (s *Store) List(ctx context.Context, caseID string, limit int) ([]RunSummary, error) {
	query := `
		SELECT run_id, case_id, engine, analyzed_at, event_count, conflict_count, flagged_insights, critical_findings
		FROM runs`
	args := []interface{}{}
	if caseID != "" {
		query += ` WHERE case_id = ?`
		args = append(args, caseID)
	}
	query += ` ORDER BY analyzed_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []RunSummary
	for rows.Next() {
		var sum RunSummary
		var analyzedAt string
		if err := rows.Scan(&sum.RunID, &sum.CaseID, &sum.Engine, &analyzedAt,
			&sum.EventCount, &sum.ConflictCount, &sum.FlaggedInsights, &sum.CriticalFindings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, analyzedAt); err == nil {
			sum.AnalyzedAt = t
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Get loads one complete report by run ID
func (s *Store) Get(ctx context.Context, runID string) (*model.AnalysisReport, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT report FROM runs WHERE run_id = ?`, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("decode stored report: %w", err)
	}

	return &report, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
