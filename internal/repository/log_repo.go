package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"go.uber.org/zap"
)

// LogRepository handles the append-only transition log.
// There are deliberately no update or delete methods.
type LogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewLogRepository creates a new transition log repository
func NewLogRepository(db *sql.DB, logger *zap.Logger) *LogRepository {
	return &LogRepository{db: db, logger: logger}
}

// Create appends one transition log entry
func (r *LogRepository) Create(ctx context.Context, tx *sql.Tx, entry *claim.TransitionLog) error {
	query := `
		INSERT INTO claim_logs (claim_id, user_id, before_status, after_status, notes)
		VALUES (?, ?, ?, ?, ?)
	`

	var notes interface{}
	if entry.Notes != "" {
		notes = entry.Notes
	}

	result, err := execContext(ctx, tx, r.db, query,
		entry.ClaimID, entry.UserID, entry.BeforeStatus, entry.AfterStatus, notes)
	if err != nil {
		r.logger.Error("Failed to create transition log", zap.Error(err))
		return fmt.Errorf("failed to create transition log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListByClaim retrieves a claim's audit timeline in insertion order
func (r *LogRepository) ListByClaim(ctx context.Context, claimID int64) ([]*claim.TransitionLog, error) {
	query := `
		SELECT id, claim_id, user_id, before_status, after_status, notes, created_at
		FROM claim_logs
		WHERE claim_id = ?
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, claimID)
	if err != nil {
		r.logger.Error("Failed to list transition logs", zap.Int64("claim_id", claimID), zap.Error(err))
		return nil, fmt.Errorf("failed to list transition logs: %w", err)
	}
	defer rows.Close()

	var entries []*claim.TransitionLog
	for rows.Next() {
		var entry claim.TransitionLog
		var notes sql.NullString
		if err := rows.Scan(
			&entry.ID, &entry.ClaimID, &entry.UserID,
			&entry.BeforeStatus, &entry.AfterStatus, &notes, &entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transition log: %w", err)
		}
		entry.Notes = notes.String
		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
