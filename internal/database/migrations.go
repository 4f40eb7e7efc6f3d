package database

import (
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ErrMigrationChanged is returned when an applied migration file was edited
// after it ran
var ErrMigrationChanged = errors.New("applied migration has changed")

// Migration is one versioned schema change
type Migration struct {
	Version  int
	Name     string
	SQL      string
	Checksum string
}

// MigrationManager applies schema migrations and records them in
// schema_migrations
type MigrationManager struct {
	db    *sql.DB
	files fs.FS
}

// NewMigrationManager creates a migration manager over the embedded migrations
func NewMigrationManager(db *sql.DB) *MigrationManager {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return newMigrationManager(db, sub)
}

func newMigrationManager(db *sql.DB, files fs.FS) *MigrationManager {
	return &MigrationManager{db: db, files: files}
}

func (m *MigrationManager) ensureTable() error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// Applied returns the checksum of every applied migration, keyed by version
func (m *MigrationManager) Applied() (map[int]string, error) {
	rows, err := m.db.Query("SELECT version, checksum FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]string)
	for rows.Next() {
		var (
			version  int
			checksum string
		)
		if err := rows.Scan(&version, &checksum); err != nil {
			return nil, fmt.Errorf("failed to scan migration: %w", err)
		}
		applied[version] = checksum
	}
	return applied, rows.Err()
}

// Load reads the migration files in version order. File names start with
// the version, as in 001_sessions.sql.
func (m *MigrationManager) Load() ([]Migration, error) {
	names, err := fs.Glob(m.files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}

	migrations := make([]Migration, 0, len(names))
	seen := make(map[int]string)
	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return nil, fmt.Errorf("invalid migration file name %s: %w", name, err)
		}
		if other, ok := seen[version]; ok {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, name, version)
		}
		seen[version] = name

		content, err := fs.ReadFile(m.files, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(content)
		migrations = append(migrations, Migration{
			Version:  version,
			Name:     strings.TrimSuffix(path.Base(name), ".sql"),
			SQL:      string(content),
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Pending returns the migrations not applied yet. An applied migration whose
// file no longer matches its recorded checksum is an error.
func (m *MigrationManager) Pending() ([]Migration, error) {
	if err := m.ensureTable(); err != nil {
		return nil, err
	}
	applied, err := m.Applied()
	if err != nil {
		return nil, err
	}
	migrations, err := m.Load()
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range migrations {
		sum, ok := applied[mig.Version]
		if !ok {
			pending = append(pending, mig)
			continue
		}
		if sum != mig.Checksum {
			return nil, fmt.Errorf("%w: %s", ErrMigrationChanged, mig.Name)
		}
	}
	return pending, nil
}

func (m *MigrationManager) apply(mig Migration) error {
	return Transaction(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(mig.SQL); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", mig.Name, err)
		}
		_, err := tx.Exec(
			"INSERT INTO schema_migrations (version, name, checksum) VALUES (?, ?, ?)",
			mig.Version, mig.Name, mig.Checksum,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
		}
		return nil
	})
}

// RunMigrations applies every pending migration, each in its own transaction
func (m *MigrationManager) RunMigrations() error {
	pending, err := m.Pending()
	if err != nil {
		return err
	}
	for _, mig := range pending {
		if err := m.apply(mig); err != nil {
			return err
		}
	}
	return nil
}
