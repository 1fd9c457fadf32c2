package service

import (
	"context"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"go.uber.org/zap"
)

// StatsService aggregates claim counts per status, scoped by role.
// A User sees only their own claims; Verifier and Approver see all claims
// except drafts, which stay private to their owners until submission.
type StatsService struct {
	claimRepo *repository.ClaimRepository
	logger    *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(claimRepo *repository.ClaimRepository, logger *zap.Logger) *StatsService {
	return &StatsService{claimRepo: claimRepo, logger: logger}
}

// GetStats returns per-status counts for the actor's scope.
// Missing buckets are zero; Total is the sum of what the scoped query
// returned, so for non-User roles drafts are excluded by construction.
func (s *StatsService) GetStats(ctx context.Context, actor claim.Actor) (*claim.Stats, error) {
	var ownerID int64
	excludeDraft := true
	if actor.Role == claim.RoleUser {
		ownerID = actor.ID
		excludeDraft = false
	}

	counts, err := s.claimRepo.CountByStatus(ctx, ownerID, excludeDraft)
	if err != nil {
		s.logger.Error("Failed to aggregate claim stats",
			zap.Int64("actor_id", actor.ID),
			zap.String("actor_role", actor.Role.String()),
			zap.Error(err))
		return nil, err
	}

	stats := &claim.Stats{
		Draft:     counts[claim.StatusDraft],
		Submitted: counts[claim.StatusSubmitted],
		Reviewed:  counts[claim.StatusReviewed],
		Approved:  counts[claim.StatusApproved],
		Rejected:  counts[claim.StatusRejected],
	}
	stats.Total = stats.Draft + stats.Submitted + stats.Reviewed + stats.Approved + stats.Rejected
	return stats, nil
}
