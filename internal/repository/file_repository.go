package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/igs-backend-go/internal/database"
	"github.com/jengzang/igs-backend-go/internal/models"
)

// FileRepository stores the raw files accepted into sessions
type FileRepository struct {
	db *sql.DB
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Append stores a file after the session's last one and sets its ID and Seq
func (r *FileRepository) Append(f *models.SessionFile) error {
	f.CreatedAt = time.Now().UTC()
	f.Size = int64(len(f.Content))

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		err := tx.QueryRow(
			"SELECT COALESCE(MAX(seq), 0) + 1 FROM session_files WHERE session_id = ?", f.SessionID,
		).Scan(&f.Seq)
		if err != nil {
			return fmt.Errorf("failed to allocate file sequence: %w", err)
		}

		result, err := tx.Exec(
			`INSERT INTO session_files (session_id, seq, name, kind, content, size, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.SessionID, f.Seq, f.Name, f.Kind, f.Content, f.Size, f.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert file: %w", err)
		}
		f.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get file id: %w", err)
		}
		return nil
	})
}

// ListBySession returns the files of a session in replay order, content included
func (r *FileRepository) ListBySession(sessionID string) ([]models.SessionFile, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, seq, name, kind, content, size, created_at
		FROM session_files WHERE session_id = ? ORDER BY seq`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	files := []models.SessionFile{}
	for rows.Next() {
		var f models.SessionFile
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Seq, &f.Name, &f.Kind, &f.Content, &f.Size, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteBySession removes every file of a session
func (r *FileRepository) DeleteBySession(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM session_files WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}
