package database

import (
	"io/fs"
	"slices"
	"testing"
	"testing/fstest"
)

func TestPendingMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.up.sql":   {Data: []byte("SELECT 2")},
		"001_a.up.sql":   {Data: []byte("SELECT 1")},
		"001_a.down.sql": {Data: []byte("SELECT 0")},
		"003_c.up.sql":   {Data: []byte("SELECT 3")},
		"notes.txt":      {Data: []byte("ignore")},
	}

	got, err := PendingMigrations(fsys, []string{"002_b.up.sql"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_a.up.sql", "003_c.up.sql"}
	if !slices.Equal(got, want) {
		t.Errorf("pending = %v, want %v", got, want)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := PendingMigrations(sub, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_portfolios.up.sql", "002_balance_snapshots.up.sql"}
	if !slices.Equal(got, want) {
		t.Errorf("embedded = %v, want %v", got, want)
	}
}
