package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/jsondoc/internal/jv"
)

// createTestStore creates a new store in a temporary directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustParse parses JSON text or fails the test.
func mustParse(t *testing.T, text string) jv.Value {
	t.Helper()
	v, err := jv.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return v
}

// mustPut stores text under name or fails the test.
func mustPut(t *testing.T, s *Store, name, text string) Revision {
	t.Helper()
	rev, err := s.Put(t.Context(), name, mustParse(t, text))
	if err != nil {
		t.Fatalf("Put(%q) failed: %v", name, err)
	}
	return rev
}
