package service

import (
	"context"
	"database/sql"
	"fmt"

	"gesturecontrol/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// ActionJournal keeps a history of dispatched actions in SQLite
type ActionJournal struct {
	db *sql.DB
}

func NewActionJournal(db *sql.DB) *ActionJournal {
	return &ActionJournal{db: db}
}

// Record appends one dispatched action
func (j *ActionJournal) Record(ctx context.Context, rec models.ActionRecord) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO actions (id, type, status, reason, error, duration_ms, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Type, rec.Status, rec.Reason, rec.Error, rec.DurationMS, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert action: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first
func (j *ActionJournal) Recent(ctx context.Context, limit int) ([]models.ActionRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, type, status, reason, error, duration_ms, created_at FROM actions ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	records := make([]models.ActionRecord, 0, limit)
	for rows.Next() {
		var rec models.ActionRecord
		if err := rows.Scan(&rec.ID, &rec.Type, &rec.Status, &rec.Reason, &rec.Error, &rec.DurationMS, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
