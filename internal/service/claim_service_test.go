package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"github.com/aqitech/claimflow/pkg/database"
)

type serviceFixture struct {
	db        *database.DB
	claimRepo *repository.ClaimRepository
	logRepo   *repository.LogRepository
	userRepo  *repository.UserRepository
	claims    *ClaimService
	stats     *StatsService
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(database.Config{
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).Run(context.Background(), "../../migrations"))

	claimRepo := repository.NewClaimRepository(db.DB, logger)
	return &serviceFixture{
		db:        db,
		claimRepo: claimRepo,
		logRepo:   repository.NewLogRepository(db.DB, logger),
		userRepo:  repository.NewUserRepository(db.DB, logger),
		claims:    NewClaimService(claimRepo, logger),
		stats:     NewStatsService(claimRepo, logger),
	}
}

func (f *serviceFixture) createUser(t *testing.T, email string, role claim.Role) *claim.User {
	t.Helper()
	u := &claim.User{Name: email, Email: email, PasswordHash: "x", Role: role}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func (f *serviceFixture) setStatus(t *testing.T, id int64, status claim.Status) {
	t.Helper()
	require.NoError(t, f.claimRepo.UpdateStatus(context.Background(), nil, id, status))
}

func TestClaimService_Create(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", claim.RoleUser)

	c, err := f.claims.Create(ctx, owner.ID, CreateClaimInput{
		Title:          "Dental claim",
		Description:    "Tooth filling",
		Amount:         500000,
		AttachmentPath: "claims/receipt-1.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, claim.StatusDraft, c.Status, "new claims always start in draft")
	assert.Equal(t, owner.ID, c.UserID)
	assert.Equal(t, 500000.0, c.Amount)
	assert.Equal(t, "claims/receipt-1.jpg", c.AttachmentPath)
	assert.NotZero(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	logs, err := f.logRepo.ListByClaim(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, logs, "claim creation must not write transition logs")
}

func TestClaimService_CreateValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	owner := f.createUser(t, "owner@example.com", claim.RoleUser)

	tests := []struct {
		name  string
		input CreateClaimInput
	}{
		{"empty title", CreateClaimInput{Title: "", Description: "desc", Amount: 10}},
		{"blank title", CreateClaimInput{Title: "   ", Description: "desc", Amount: 10}},
		{"empty description", CreateClaimInput{Title: "title", Description: "", Amount: 10}},
		{"negative amount", CreateClaimInput{Title: "title", Description: "desc", Amount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.claims.Create(ctx, owner.ID, tt.input)
			require.ErrorIs(t, err, claim.ErrValidation)
		})
	}
}

func TestClaimService_CreateZeroAmount(t *testing.T) {
	f := newServiceFixture(t)
	owner := f.createUser(t, "owner@example.com", claim.RoleUser)

	c, err := f.claims.Create(context.Background(), owner.ID, CreateClaimInput{
		Title: "Free replacement", Description: "Warranty claim", Amount: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Amount)
}

func TestClaimService_ListOwn(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com", claim.RoleUser)
	bob := f.createUser(t, "bob@example.com", claim.RoleUser)

	for _, title := range []string{"first", "second", "third"} {
		_, err := f.claims.Create(ctx, alice.ID, CreateClaimInput{Title: title, Description: "d", Amount: 1})
		require.NoError(t, err)
	}
	_, err := f.claims.Create(ctx, bob.ID, CreateClaimInput{Title: "bob's", Description: "d", Amount: 1})
	require.NoError(t, err)

	claims, err := f.claims.ListOwn(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, claims, 3)
	assert.Equal(t, "first", claims[0].Title)
	assert.Equal(t, "second", claims[1].Title)
	assert.Equal(t, "third", claims[2].Title)
	for _, c := range claims {
		assert.Equal(t, alice.ID, c.UserID)
	}
}

func TestClaimService_ListByStatus(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	alice := f.createUser(t, "alice@example.com", claim.RoleUser)

	draft, err := f.claims.Create(ctx, alice.ID, CreateClaimInput{Title: "draft one", Description: "d", Amount: 1})
	require.NoError(t, err)
	submitted, err := f.claims.Create(ctx, alice.ID, CreateClaimInput{Title: "submitted one", Description: "d", Amount: 1})
	require.NoError(t, err)
	f.setStatus(t, submitted.ID, claim.StatusSubmitted)

	claims, err := f.claims.ListByStatus(ctx, claim.StatusSubmitted)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, submitted.ID, claims[0].ID)
	assert.Equal(t, "alice@example.com", claims[0].OwnerName, "review queues carry the owner's name")

	claims, err = f.claims.ListByStatus(ctx, claim.StatusDraft)
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, draft.ID, claims[0].ID)

	_, err = f.claims.ListByStatus(ctx, claim.Status("bogus"))
	require.ErrorIs(t, err, claim.ErrValidation)
}
