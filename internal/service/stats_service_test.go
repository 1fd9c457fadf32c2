package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqitech/claimflow/internal/domain/claim"
)

func seedStatsClaims(t *testing.T, f *serviceFixture, ownerID int64, statuses ...claim.Status) {
	t.Helper()
	ctx := context.Background()
	for _, status := range statuses {
		c, err := f.claims.Create(ctx, ownerID, CreateClaimInput{
			Title: "claim", Description: "desc", Amount: 100,
		})
		require.NoError(t, err)
		if status != claim.StatusDraft {
			f.setStatus(t, c.ID, status)
		}
	}
}

func TestStatsService_UserSeesOnlyOwnClaims(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com", claim.RoleUser)
	bob := f.createUser(t, "bob@example.com", claim.RoleUser)

	seedStatsClaims(t, f, alice.ID, claim.StatusDraft, claim.StatusDraft, claim.StatusSubmitted)
	seedStatsClaims(t, f, bob.ID, claim.StatusDraft, claim.StatusApproved)

	stats, err := f.stats.GetStats(ctx, claim.Actor{ID: alice.ID, Role: claim.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Draft)
	assert.Equal(t, 1, stats.Submitted)
	assert.Equal(t, 0, stats.Approved, "another user's claims must never leak into the buckets")
	assert.Equal(t, 3, stats.Total)
}

func TestStatsService_ReviewerExcludesDrafts(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com", claim.RoleUser)

	seedStatsClaims(t, f, alice.ID,
		claim.StatusDraft, claim.StatusDraft,
		claim.StatusSubmitted, claim.StatusReviewed,
		claim.StatusApproved, claim.StatusRejected)

	for _, role := range []claim.Role{claim.RoleVerifier, claim.RoleApprover} {
		reviewer := f.createUser(t, "reviewer-"+string(role)+"@example.com", role)

		stats, err := f.stats.GetStats(ctx, claim.Actor{ID: reviewer.ID, Role: role})
		require.NoError(t, err)

		assert.Equal(t, 0, stats.Draft, "drafts are private regardless of reviewer role")
		assert.Equal(t, 1, stats.Submitted)
		assert.Equal(t, 1, stats.Reviewed)
		assert.Equal(t, 1, stats.Approved)
		assert.Equal(t, 1, stats.Rejected)
		assert.Equal(t, 4, stats.Total, "total excludes drafts for reviewer roles")
	}
}

func TestStatsService_EmptyBucketsAreZero(t *testing.T) {
	f := newServiceFixture(t)
	alice := f.createUser(t, "alice@example.com", claim.RoleUser)

	stats, err := f.stats.GetStats(context.Background(), claim.Actor{ID: alice.ID, Role: claim.RoleUser})
	require.NoError(t, err)

	assert.Equal(t, &claim.Stats{}, stats)
}
