// Package telemetry persists an append-only log of lookups. Records carry
// the query text and a timestamp, nothing else: no answers, no identity. A
// write failure is never allowed to fail the lookup that triggered it.
package telemetry

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Record kinds.
const (
	KindQuery = "query"
	KindPhase = "phase"
)

// Record is one appended log row.
type Record struct {
	ID    string
	Query string
	Kind  string
	At    time.Time
}

// WriteError reports a failed append. The log is best-effort by contract, so
// callers log the error and move on.
type WriteError struct {
	Query string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("telemetry: append %q: %v", e.Query, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store is the SQLite-backed append-only log.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	path   string
	logger *zap.SugaredLogger
}

// Open initializes the log database at path, creating the directory and
// schema as needed.
func Open(path string, logger *zap.SugaredLogger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debugf("failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debugf("failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logger.Debugf("failed to set sqlite synchronous=NORMAL: %v", err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// initialize creates the required table.
func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS query_log (
		id TEXT PRIMARY KEY,
		query TEXT NOT NULL,
		kind TEXT NOT NULL,
		at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_query_log_at ON query_log(at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Append writes one record. Rows are never updated or deleted.
func (s *Store) Append(query, kind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"INSERT INTO query_log (id, query, kind, at) VALUES (?, ?, ?, ?)",
		uuid.NewString(), query, kind, time.Now().UTC(),
	)
	if err != nil {
		return &WriteError{Query: query, Err: err}
	}
	return nil
}

// Note appends and only logs on failure. Safe on a nil store, so disabled
// telemetry needs no call-site checks.
func (s *Store) Note(query, kind string) {
	if s == nil {
		return
	}
	if err := s.Append(query, kind); err != nil {
		s.logger.Warnf("telemetry write failed: %v", err)
	}
}

// Recent returns the newest n records, newest first.
func (s *Store) Recent(n int) ([]Record, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(
		"SELECT id, query, kind, at FROM query_log ORDER BY at DESC, rowid DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Query, &r.Kind, &r.At); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Count returns the total number of records.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM query_log").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// CountByKind returns record counts keyed by kind.
func (s *Store) CountByKind() (map[string]int, error) {
	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM query_log GROUP BY kind")
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

// ExportCSV writes the whole log, oldest first, as "timestamp,query" rows.
// Commas and newlines inside the query are flattened so each record stays
// one line. Returns the number of rows written.
func (s *Store) ExportCSV(w io.Writer) (int, error) {
	rows, err := s.db.Query("SELECT query, at FROM query_log ORDER BY at, rowid")
	if err != nil {
		return 0, fmt.Errorf("failed to query log: %w", err)
	}
	defer rows.Close()

	if _, err := fmt.Fprintln(w, "timestamp,query"); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	written := 0
	for rows.Next() {
		var query string
		var at time.Time
		if err := rows.Scan(&query, &at); err != nil {
			return written, fmt.Errorf("failed to scan record: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s,%s\n", at.UTC().Format(time.RFC3339), sanitizeField(query)); err != nil {
			return written, fmt.Errorf("failed to write row: %w", err)
		}
		written++
	}
	return written, rows.Err()
}

// sanitizeField keeps a query on one CSV line.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, ",", ";")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
