package database

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "nested", "igs.db")})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenAppliesMigrations(t *testing.T) {
	db := openTestDB(t)

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("applied %d migrations", n)
	}

	// Running again is a no-op
	if err := NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil || n != 1 {
		t.Fatalf("after rerun %d %v", n, err)
	}
}

func TestTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	boom := errors.New("boom")

	err := Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("INSERT INTO sessions (id, name) VALUES ('a', 'first')"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	if n != 0 {
		t.Fatalf("rolled back insert is visible")
	}

	err = Transaction(db, func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO sessions (id, name) VALUES ('b', 'second')")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	if n != 1 {
		t.Fatalf("committed insert missing")
	}
}

func TestMigrationChecksum(t *testing.T) {
	db := openTestDB(t)
	files := fstest.MapFS{
		"002_notes.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
	}
	m := newMigrationManager(db, files)

	pending, err := m.Pending()
	if err != nil || len(pending) != 1 || pending[0].Name != "002_notes" {
		t.Fatalf("pending %+v %v", pending, err)
	}
	if err := m.RunMigrations(); err != nil {
		t.Fatal(err)
	}
	if pending, err := m.Pending(); err != nil || len(pending) != 0 {
		t.Fatalf("after run %+v %v", pending, err)
	}

	files["002_notes.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE notes (id TEXT);")}
	if err := m.RunMigrations(); !errors.Is(err, ErrMigrationChanged) {
		t.Fatalf("expected ErrMigrationChanged, got %v", err)
	}
}

func TestMigrationBadName(t *testing.T) {
	m := newMigrationManager(openTestDB(t), fstest.MapFS{"sessions.sql": {Data: []byte("SELECT 1;")}})
	if _, err := m.Load(); err == nil {
		t.Fatal("expected error for unversioned file")
	}
}
