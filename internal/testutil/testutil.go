package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/headline-goat/abtest/internal/store"
)

// SetupTestStore creates a test database and returns the store.
// Uses t.TempDir() for automatic cleanup on test completion.
func SetupTestStore(t *testing.T) (*store.SQLiteStore, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := store.Open(dbPath, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s, dbPath
}
