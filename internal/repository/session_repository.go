package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jengzang/igs-backend-go/internal/database"
	"github.com/jengzang/igs-backend-go/internal/models"
)

// SessionRepository handles database operations for sessions
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session
func (r *SessionRepository) Create(s *models.Session) error {
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	_, err := r.db.Exec(
		"INSERT INTO sessions (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)",
		s.ID, s.Name, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByID returns the session or nil when it does not exist
func (r *SessionRepository) GetByID(id string) (*models.Session, error) {
	var s models.Session
	err := r.db.QueryRow(
		"SELECT id, name, created_at, updated_at FROM sessions WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// List returns every session, oldest first
func (r *SessionRepository) List() ([]models.Session, error) {
	rows, err := r.db.Query("SELECT id, name, created_at, updated_at FROM sessions ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// Touch bumps the update time of a session
func (r *SessionRepository) Touch(id string) error {
	_, err := r.db.Exec("UPDATE sessions SET updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to touch session: %w", err)
	}
	return nil
}

// Delete removes a session and its files
func (r *SessionRepository) Delete(id string) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM session_files WHERE session_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete session files: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		return nil
	})
}
