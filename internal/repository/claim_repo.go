package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"go.uber.org/zap"
)

// ClaimRepository handles claim row persistence
type ClaimRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *sql.DB, logger *zap.Logger) *ClaimRepository {
	return &ClaimRepository{db: db, logger: logger}
}

const claimColumns = `id, user_id, title, description, amount, status, attachment_path, created_at, updated_at`

// Create inserts a new claim. The status is forced to draft regardless of
// what the caller set on the struct; claims enter the workflow at its root.
func (r *ClaimRepository) Create(ctx context.Context, tx *sql.Tx, c *claim.Claim) error {
	query := `
		INSERT INTO claims (user_id, title, description, amount, status, attachment_path)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	c.Status = claim.StatusDraft

	var attachment interface{}
	if c.AttachmentPath != "" {
		attachment = c.AttachmentPath
	}

	result, err := execContext(ctx, tx, r.db, query,
		c.UserID, c.Title, c.Description, c.Amount, c.Status, attachment)
	if err != nil {
		r.logger.Error("Failed to create claim", zap.Error(err))
		return fmt.Errorf("failed to create claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	c.ID = id

	return r.reload(ctx, tx, c)
}

// GetByID retrieves a claim by ID. Returns (nil, nil) when absent.
func (r *ClaimRepository) GetByID(ctx context.Context, tx *sql.Tx, id int64) (*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id = ?`, claimColumns)

	c, err := scanClaim(queryRowContext(ctx, tx, r.db, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get claim", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return c, nil
}

// UpdateStatus sets the claim's status and bumps updated_at
func (r *ClaimRepository) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status claim.Status) error {
	query := `UPDATE claims SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	if _, err := execContext(ctx, tx, r.db, query, status, id); err != nil {
		r.logger.Error("Failed to update claim status",
			zap.Int64("id", id), zap.String("status", status.String()), zap.Error(err))
		return fmt.Errorf("failed to update claim status: %w", err)
	}
	return nil
}

// ListByOwner retrieves all claims owned by a user in insertion order
func (r *ClaimRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*claim.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE user_id = ? ORDER BY id ASC`, claimColumns)

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		r.logger.Error("Failed to list claims by owner", zap.Int64("user_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	return collectClaims(rows)
}

// ListByStatus retrieves all claims in a status, joined with the owner's
// display name for the review queues.
func (r *ClaimRepository) ListByStatus(ctx context.Context, status claim.Status) ([]*claim.Claim, error) {
	query := `
		SELECT c.id, c.user_id, c.title, c.description, c.amount, c.status,
			c.attachment_path, c.created_at, c.updated_at, u.name
		FROM claims c
		JOIN users u ON u.id = c.user_id
		WHERE c.status = ?
		ORDER BY c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		r.logger.Error("Failed to list claims by status",
			zap.String("status", status.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer rows.Close()

	var claims []*claim.Claim
	for rows.Next() {
		var c claim.Claim
		var attachment sql.NullString
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &c.Description, &c.Amount, &c.Status,
			&attachment, &c.CreatedAt, &c.UpdatedAt, &c.OwnerName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		c.AttachmentPath = attachment.String
		claims = append(claims, &c)
	}
	return claims, rows.Err()
}

// CountByStatus returns per-status claim counts for the given scope.
// ownerID > 0 restricts to one owner; excludeDraft drops draft rows.
func (r *ClaimRepository) CountByStatus(ctx context.Context, ownerID int64, excludeDraft bool) (map[claim.Status]int, error) {
	query := `SELECT status, COUNT(*) FROM claims`
	var args []interface{}

	switch {
	case ownerID > 0:
		query += ` WHERE user_id = ?`
		args = append(args, ownerID)
	case excludeDraft:
		query += ` WHERE status != ?`
		args = append(args, claim.StatusDraft)
	}
	query += ` GROUP BY status`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to count claims by status", zap.Error(err))
		return nil, fmt.Errorf("failed to count claims: %w", err)
	}
	defer rows.Close()

	counts := make(map[claim.Status]int)
	for rows.Next() {
		var status claim.Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *ClaimRepository) reload(ctx context.Context, tx *sql.Tx, c *claim.Claim) error {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id = ?`, claimColumns)
	loaded, err := scanClaim(queryRowContext(ctx, tx, r.db, query, c.ID))
	if err != nil {
		return fmt.Errorf("failed to reload claim: %w", err)
	}
	*c = *loaded
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClaim(row rowScanner) (*claim.Claim, error) {
	var c claim.Claim
	var attachment sql.NullString
	err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Description, &c.Amount, &c.Status,
		&attachment, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.AttachmentPath = attachment.String
	return &c, nil
}

func collectClaims(rows *sql.Rows) ([]*claim.Claim, error) {
	var claims []*claim.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan claim: %w", err)
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
