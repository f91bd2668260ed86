// Package store persists parse runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"ntt-parser/parser"
	"ntt-parser/treenode"
)

var ErrNotFound = errors.New("store: run not found")

// Run is one recorded parse.
type Run struct {
	ID          string                `json:"id" yaml:"id"`
	Source      string                `json:"source" yaml:"source"`
	Origin      string                `json:"origin" yaml:"origin"` // cli, http or ws
	Valid       bool                  `json:"valid" yaml:"valid"`
	TokenCount  int                   `json:"token_count" yaml:"token_count"`
	Diagnostics []treenode.Diagnostic `json:"diagnostics" yaml:"diagnostics"`
	Duration    time.Duration         `json:"duration" yaml:"duration"`
	CreatedAt   time.Time             `json:"created_at" yaml:"created_at"`
}

// NewRun records r under a fresh id.
func NewRun(origin string, r *parser.Result) *Run {
	return &Run{
		ID:          uuid.NewString(),
		Source:      r.Source,
		Origin:      origin,
		Valid:       r.Valid(),
		TokenCount:  len(r.Tokens),
		Diagnostics: r.Diagnostics,
		Duration:    r.Duration,
		CreatedAt:   time.Now(),
	}
}

// Store is the persistence surface used by the server and CLI.
type Store interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
	Close() error
}

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		origin TEXT NOT NULL DEFAULT '',
		valid INTEGER NOT NULL,
		token_count INTEGER NOT NULL DEFAULT 0,
		diagnostics TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Save(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	diags, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to encode diagnostics: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, origin, valid, token_count, diagnostics, duration_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Source, run.Origin, run.Valid, run.TokenCount, string(diags),
		int64(run.Duration), run.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source, origin, valid, token_count, diagnostics, duration_ns, created_at
		FROM runs WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List returns the newest runs first. A limit of zero or less means 20.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, origin, valid, token_count, diagnostics, duration_ns, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run      Run
		diags    sql.NullString
		duration int64
	)
	err := row.Scan(&run.ID, &run.Source, &run.Origin, &run.Valid, &run.TokenCount,
		&diags, &duration, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.Duration = time.Duration(duration)
	if diags.Valid && diags.String != "" {
		if err := json.Unmarshal([]byte(diags.String), &run.Diagnostics); err != nil {
			return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
		}
	}
	return &run, nil
}
