// Package workflow contains the claim status-transition engine: the one
// place allowed to change a claim's status. Every successful transition
// mutates exactly one claim row and appends exactly one audit log entry,
// atomically; every failure leaves both tables untouched.
package workflow

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"github.com/aqitech/claimflow/pkg/database"
	"go.uber.org/zap"
)

// Engine enforces the approval workflow over the claim store
type Engine struct {
	db        *database.DB
	claimRepo *repository.ClaimRepository
	logRepo   *repository.LogRepository
	locker    *claimLocker
	logger    *zap.Logger
}

// NewEngine creates a new transition engine
func NewEngine(
	db *database.DB,
	claimRepo *repository.ClaimRepository,
	logRepo *repository.LogRepository,
	logger *zap.Logger,
) *Engine {
	return &Engine{
		db:        db,
		claimRepo: claimRepo,
		logRepo:   logRepo,
		locker:    newClaimLocker(),
		logger:    logger,
	}
}

// RequestTransition moves a claim to the requested status on behalf of the
// actor. The sequence lock -> read -> authorize -> validate edge -> mutate
// -> append log runs as one unit of work: concurrent requests for the same
// claim serialize on the claim lock, and the later one is validated
// against the status the earlier one left behind.
func (e *Engine) RequestTransition(
	ctx context.Context,
	claimID int64,
	requested claim.Status,
	actor claim.Actor,
) (*claim.Claim, error) {
	if !requested.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", claim.ErrValidation, requested)
	}

	unlock := e.locker.Lock(claimID)
	defer unlock()

	var updated *claim.Claim
	err := e.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		current, err := e.claimRepo.GetByID(ctx, tx, claimID)
		if err != nil {
			return err
		}
		if current == nil {
			return fmt.Errorf("%w: claim %d", claim.ErrNotFound, claimID)
		}

		if !actor.Role.CanSet(requested) {
			return fmt.Errorf("%w: role %s cannot set status %s",
				claim.ErrForbidden, actor.Role, requested)
		}

		if !current.Status.CanTransitionTo(requested) {
			return fmt.Errorf("%w: %s -> %s",
				claim.ErrInvalidTransition, current.Status, requested)
		}

		if err := e.claimRepo.UpdateStatus(ctx, tx, claimID, requested); err != nil {
			return err
		}

		entry := &claim.TransitionLog{
			ClaimID:      claimID,
			UserID:       actor.ID,
			BeforeStatus: current.Status,
			AfterStatus:  requested,
		}
		if err := e.logRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		updated, err = e.claimRepo.GetByID(ctx, tx, claimID)
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		e.logger.Warn("Transition rejected",
			zap.Int64("claim_id", claimID),
			zap.String("requested", requested.String()),
			zap.Int64("actor_id", actor.ID),
			zap.String("actor_role", actor.Role.String()),
			zap.Error(err))
		return nil, err
	}

	e.logger.Info("Claim transitioned",
		zap.Int64("claim_id", claimID),
		zap.String("status", updated.Status.String()),
		zap.Int64("actor_id", actor.ID))
	return updated, nil
}

// History returns the claim's audit timeline in insertion order
func (e *Engine) History(ctx context.Context, claimID int64) ([]*claim.TransitionLog, error) {
	return e.logRepo.ListByClaim(ctx, claimID)
}
