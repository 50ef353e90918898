package db

import (
	"context"
	"path/filepath"
	"testing"
)

// NewTestStore opens a migrated store in a temporary directory that is
// closed when the test finishes.
func NewTestStore(t testing.TB) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	ctx := context.Background()
	store, err := NewStore(ctx, dbPath)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		t.Fatalf("migrate test store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}
