package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/parthgupta9/splitr/internal/models"
	"github.com/parthgupta9/splitr/internal/storage/sqlite"
)

// newTestStore builds a fresh SQLite store on a temp file, same backend the
// server runs with.
func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitr-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUser(t *testing.T, store *sqlite.SQLiteStore, email, name string) *models.User {
	t.Helper()
	user := models.NewUser(email, name, "")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", email, err)
	}
	return user
}

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
