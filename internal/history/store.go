// Package history records computed results in a SQLite database so past runs
// can be listed with `rms history`.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"rmscalc/internal/calc"
	"rmscalc/internal/display"
	"rmscalc/internal/logging"
)

// Store persists display.Records.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// Open initializes the SQLite database at the given path.
func Open(path string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Get(logging.CategoryHistory).Debug("history store opened", zap.String("path", path))
	return s, nil
}

// initialize creates the required tables.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS results (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL DEFAULT '',
		formula TEXT NOT NULL,
		input_json TEXT NOT NULL,
		count INTEGER NOT NULL,
		sum_squares REAL NOT NULL,
		value REAL NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create results table: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Save stores rec. A record without a RunID gets a fresh UUID, and one
// without a timestamp gets the current time. The stored id is returned.
func (s *Store) Save(ctx context.Context, rec display.Record) (string, error) {
	id := rec.RunID
	if id == "" {
		id = uuid.NewString()
	}
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	input, err := json.Marshal(rec.Input)
	if err != nil {
		return "", fmt.Errorf("failed to encode input: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO results (id, source, formula, input_json, count, sum_squares, value, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Source, string(rec.Result.Formula), string(input),
		rec.Result.Count, rec.Result.SumSquares, rec.Result.Value, at.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save result: %w", err)
	}

	logging.Get(logging.CategoryHistory).Debug("result saved",
		zap.String("id", id), zap.Float64("value", rec.Result.Value))
	return id, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]display.Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, formula, input_json, count, sum_squares, value, created_at
		 FROM results ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var out []display.Record
	for rows.Next() {
		var (
			rec     display.Record
			formula string
			input   string
			created int64
		)
		if err := rows.Scan(&rec.RunID, &rec.Source, &formula, &input,
			&rec.Result.Count, &rec.Result.SumSquares, &rec.Result.Value, &created); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := json.Unmarshal([]byte(input), &rec.Input); err != nil {
			return nil, fmt.Errorf("failed to decode input for %s: %w", rec.RunID, err)
		}
		rec.Result.Formula = calc.Formula(formula)
		rec.At = time.Unix(0, created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Sink returns a display.Sink that saves every record to s.
func (s *Store) Sink() display.Sink {
	return display.SinkFunc(func(ctx context.Context, rec display.Record) error {
		_, err := s.Save(ctx, rec)
		return err
	})
}
