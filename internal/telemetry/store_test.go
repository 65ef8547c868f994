package telemetry

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "telemetry.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	for _, q := range []string{"first query", "second query", "third query"} {
		if err := s.Append(q, KindQuery); err != nil {
			t.Fatalf("append %q: %v", q, err)
		}
	}

	records, err := s.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	for _, r := range records {
		if _, err := uuid.Parse(r.ID); err != nil {
			t.Errorf("record id %q is not a uuid: %v", r.ID, err)
		}
		if r.Kind != KindQuery {
			t.Errorf("kind = %q", r.Kind)
		}
		if r.At.IsZero() {
			t.Error("record has zero timestamp")
		}
		if time.Since(r.At) > time.Minute {
			t.Errorf("timestamp %v too old", r.At)
		}
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.Append("query", KindQuery); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	records, err := s.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
}

func TestCountByKind(t *testing.T) {
	s := openTestStore(t)

	s.Note("bias in hiring", KindQuery)
	s.Note("bias in lending", KindQuery)
	s.Note("create", KindPhase)

	total, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 3 {
		t.Fatalf("count = %d, want 3", total)
	}

	counts, err := s.CountByKind()
	if err != nil {
		t.Fatalf("count by kind: %v", err)
	}
	if counts[KindQuery] != 2 || counts[KindPhase] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestExportCSV(t *testing.T) {
	s := openTestStore(t)

	if err := s.Append("plain query", KindQuery); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append("commas, and\nnewlines", KindQuery); err != nil {
		t.Fatalf("append: %v", err)
	}

	var buf bytes.Buffer
	n, err := s.ExportCSV(&buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if n != 2 {
		t.Fatalf("wrote %d rows, want 2", n)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 rows:\n%s", len(lines), buf.String())
	}
	if lines[0] != "timestamp,query" {
		t.Fatalf("header = %q", lines[0])
	}
	// Oldest first.
	if !strings.HasSuffix(lines[1], ",plain query") {
		t.Fatalf("first row = %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], ",commas; and newlines") {
		t.Fatalf("sanitized row = %q", lines[2])
	}
	for _, line := range lines[1:] {
		ts := line[:strings.Index(line, ",")]
		if _, err := time.Parse(time.RFC3339, ts); err != nil {
			t.Errorf("timestamp %q not RFC3339: %v", ts, err)
		}
	}
}

func TestAppendAfterCloseIsWriteError(t *testing.T) {
	s := openTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	err := s.Append("too late", KindQuery)
	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("want *WriteError, got %T: %v", err, err)
	}
	if werr.Query != "too late" {
		t.Fatalf("query = %q", werr.Query)
	}

	// Note must swallow the same failure.
	s.Note("too late", KindQuery)
}

func TestNoteOnNilStore(t *testing.T) {
	var s *Store
	s.Note("ignored", KindQuery)
	if err := s.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "telemetry.db")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Append("hello", KindQuery); err != nil {
		t.Fatalf("append: %v", err)
	}
}
