package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/guessr/pkg/domain"
	_ "modernc.org/sqlite"
)

// Recorder implements ports.ResultRecorder as an append-only SQLite ledger of finished games.
type Recorder struct {
	db *sql.DB
}

// Open opens (or creates) the ledger at path. Use ":memory:" for a throwaway ledger.
func Open(path string) (*Recorder, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY, and keeps ":memory:" on one connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &Recorder{db: db}
	if err := r.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return r, nil
}

func (r *Recorder) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		outcome TEXT NOT NULL,
		character TEXT,
		questions INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		ended_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_outcome ON results(outcome);
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (r *Recorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record appends a finished game.
func (r *Recorder) Record(ctx context.Context, res domain.Result) error {
	endedAt := res.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO results (session_id, outcome, character, questions, duration_ms, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.SessionID, string(res.Outcome), nullString(res.Character), res.Questions,
		res.Duration.Milliseconds(), endedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Summary aggregates every recorded game.
func (r *Recorder) Summary(ctx context.Context) (domain.Summary, error) {
	summary := domain.Summary{ByOutcome: make(map[domain.Outcome]int)}

	rows, err := r.db.QueryContext(ctx,
		`SELECT outcome, COUNT(*), COALESCE(SUM(questions), 0) FROM results GROUP BY outcome ORDER BY outcome`)
	if err != nil {
		return summary, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	var questions int
	for rows.Next() {
		var outcome string
		var count, sum int
		if err := rows.Scan(&outcome, &count, &sum); err != nil {
			return summary, fmt.Errorf("scan summary row: %w", err)
		}
		summary.ByOutcome[domain.Outcome(outcome)] = count
		summary.Games += count
		questions += sum
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("iterate summary: %w", err)
	}

	if summary.Games > 0 {
		summary.AvgQuestions = float64(questions) / float64(summary.Games)
	}
	return summary, nil
}

// Recent returns the latest results, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]domain.Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, outcome, character, questions, duration_ms, ended_at
		 FROM results ORDER BY ended_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []domain.Result
	for rows.Next() {
		var res domain.Result
		var outcome string
		var character sql.NullString
		var durationMS, endedAt int64
		if err := rows.Scan(&res.SessionID, &outcome, &character, &res.Questions, &durationMS, &endedAt); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		res.Outcome = domain.Outcome(outcome)
		res.Character = character.String
		res.Duration = time.Duration(durationMS) * time.Millisecond
		res.EndedAt = time.UnixMilli(endedAt)
		out = append(out, res)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
