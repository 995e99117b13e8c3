package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ALERTNESS/go-backend/internal/models"
	"ALERTNESS/go-backend/internal/session"
)

// SessionRepository stores session summaries. It implements session.Store.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) SessionStarted(ctx context.Context, s session.Summary) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, client_id, source, started_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		s.ID, s.ClientID, s.Source, s.StartedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session %s: %w", s.ID, err)
	}
	return nil
}

func (r *SessionRepository) SessionEnded(ctx context.Context, s session.Summary) error {
	ended := time.Now().UTC()
	if s.EndedAt != nil {
		ended = s.EndedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET ended_at = $2, frames_processed = $3, frames_skipped = $4
		WHERE id = $1`,
		s.ID, ended, s.FramesProcessed, s.FramesSkipped,
	)
	if err != nil {
		return fmt.Errorf("failed to update session %s: %w", s.ID, err)
	}
	return nil
}

// Recent returns up to limit sessions, newest first.
func (r *SessionRepository) Recent(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, client_id, source, started_at, ended_at, frames_processed, frames_skipped
		FROM sessions
		ORDER BY started_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		var ended sql.NullTime
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Source, &s.StartedAt, &ended, &s.FramesProcessed, &s.FramesSkipped); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if ended.Valid {
			t := ended.Time
			s.EndedAt = &t
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
