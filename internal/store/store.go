// Package store persists completed validation runs to SQLite so results can
// be retrieved and listed after the fact. Runs are immutable once saved.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/guts-718/AI-startup-idea-validator/internal/validation"
)

var ErrNotFound = errors.New("run not found")

type RunStore struct {
	db *sqlx.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	verdict     TEXT NOT NULL,
	final_score REAL NOT NULL,
	idea        TEXT NOT NULL,
	result      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs (created_at);
`

func Open(dbPath string) (*RunStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &RunStore{db: db}, nil
}

func (s *RunStore) Close() error {
	return s.db.Close()
}

// Run is one persisted evaluation.
type Run struct {
	RunID      string            `json:"run_id"`
	CreatedAt  time.Time         `json:"created_at"`
	Verdict    string            `json:"verdict"`
	FinalScore float64           `json:"final_score"`
	Result     validation.Result `json:"result"`
}

// RunSummary is the listing view: idea and verdict without the full trail.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	CreatedAt  time.Time `json:"created_at"`
	Verdict    string    `json:"verdict"`
	FinalScore float64   `json:"final_score"`
	Problem    string    `json:"problem"`
	Geography  string    `json:"geography"`
}

// SaveRun stores a completed run and returns its generated id.
func (s *RunStore) SaveRun(ctx context.Context, result validation.Result) (string, error) {
	runID, err := newRunID()
	if err != nil {
		return "", err
	}
	ideaBlob, err := json.Marshal(result.Idea)
	if err != nil {
		return "", fmt.Errorf("marshal idea: %w", err)
	}
	resultBlob, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, verdict, final_score, idea, result) VALUES (?, ?, ?, ?, ?, ?)`,
		runID,
		time.Now().UTC().Format(time.RFC3339Nano),
		string(result.Decision.Verdict),
		result.Decision.FinalScore,
		string(ideaBlob),
		string(resultBlob),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

func (s *RunStore) GetRun(ctx context.Context, runID string) (Run, error) {
	var row struct {
		RunID      string  `db:"run_id"`
		CreatedAt  string  `db:"created_at"`
		Verdict    string  `db:"verdict"`
		FinalScore float64 `db:"final_score"`
		Result     string  `db:"result"`
	}
	err := s.db.GetContext(ctx, &row,
		`SELECT run_id, created_at, verdict, final_score, result FROM runs WHERE run_id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("select run: %w", err)
	}

	run := Run{
		RunID:      row.RunID,
		Verdict:    row.Verdict,
		FinalScore: row.FinalScore,
	}
	run.CreatedAt, err = time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Result), &run.Result); err != nil {
		return Run{}, fmt.Errorf("decode result: %w", err)
	}
	return run, nil
}

// ListRuns returns summaries newest first, capped at limit.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []struct {
		RunID      string  `db:"run_id"`
		CreatedAt  string  `db:"created_at"`
		Verdict    string  `db:"verdict"`
		FinalScore float64 `db:"final_score"`
		Idea       string  `db:"idea"`
	}
	err := s.db.SelectContext(ctx, &rows,
		`SELECT run_id, created_at, verdict, final_score, idea FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}

	summaries := make([]RunSummary, 0, len(rows))
	for _, row := range rows {
		createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		var id struct {
			Problem   string `json:"problem"`
			Geography string `json:"geography"`
		}
		if err := json.Unmarshal([]byte(row.Idea), &id); err != nil {
			return nil, fmt.Errorf("decode idea: %w", err)
		}
		summaries = append(summaries, RunSummary{
			RunID:      row.RunID,
			CreatedAt:  createdAt,
			Verdict:    row.Verdict,
			FinalScore: row.FinalScore,
			Problem:    id.Problem,
			Geography:  id.Geography,
		})
	}
	return summaries, nil
}

func newRunID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return "run_" + hex.EncodeToString(buf), nil
}
