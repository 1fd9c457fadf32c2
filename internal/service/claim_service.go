package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"go.uber.org/zap"
)

// CreateClaimInput carries validated-at-the-boundary claim fields
type CreateClaimInput struct {
	Title          string
	Description    string
	Amount         float64
	AttachmentPath string
}

// ClaimService is the claim store's creation and listing surface
type ClaimService struct {
	claimRepo *repository.ClaimRepository
	logger    *zap.Logger
}

// NewClaimService creates a new claim service
func NewClaimService(claimRepo *repository.ClaimRepository, logger *zap.Logger) *ClaimService {
	return &ClaimService{claimRepo: claimRepo, logger: logger}
}

// Create creates a new claim in draft status for the owner.
// The schema repeats these checks as CHECK constraints so invalid rows
// are rejected even if a future caller skips this path.
func (s *ClaimService) Create(ctx context.Context, ownerID int64, in CreateClaimInput) (*claim.Claim, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", claim.ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", claim.ErrValidation)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", claim.ErrValidation)
	}

	c := &claim.Claim{
		UserID:         ownerID,
		Title:          in.Title,
		Description:    in.Description,
		Amount:         in.Amount,
		AttachmentPath: in.AttachmentPath,
	}

	if err := s.claimRepo.Create(ctx, nil, c); err != nil {
		s.logger.Error("Failed to create claim", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Claim created", zap.Int64("claim_id", c.ID), zap.Int64("owner_id", ownerID))
	return c, nil
}

// ListOwn returns all claims owned by the user, oldest first
func (s *ClaimService) ListOwn(ctx context.Context, ownerID int64) ([]*claim.Claim, error) {
	claims, err := s.claimRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("Failed to list own claims", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return claims, nil
}

// ListByStatus returns all claims in a status with owner names attached,
// for the verifier and approver review queues.
func (s *ClaimService) ListByStatus(ctx context.Context, status claim.Status) ([]*claim.Claim, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", claim.ErrValidation, status)
	}

	claims, err := s.claimRepo.ListByStatus(ctx, status)
	if err != nil {
		s.logger.Error("Failed to list claims by status",
			zap.String("status", status.String()), zap.Error(err))
		return nil, err
	}
	return claims, nil
}
