package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"go.uber.org/zap"
)

// UserRepository handles user persistence
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, u *claim.User) error {
	query := `INSERT INTO users (name, email, password_hash, role) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("email", u.Email), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	u.ID = id
	return nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*claim.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = ?`

	var u claim.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by email", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*claim.User, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM users WHERE id = ?`

	var u claim.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user by id", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
