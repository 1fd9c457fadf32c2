package auth

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

func newAuthFixture(t *testing.T, ttl time.Duration) (*Service, *repository.UserRepository) {
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

	userRepo := repository.NewUserRepository(db.DB, logger)
	return NewService(userRepo, "test-secret", ttl, logger), userRepo
}

func createTestUser(t *testing.T, userRepo *repository.UserRepository, email, password string, role claim.Role) *claim.User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)

	u := &claim.User{Name: "Test", Email: email, PasswordHash: hash, Role: role}
	require.NoError(t, userRepo.Create(context.Background(), u))
	return u
}

func TestService_LoginAndVerify(t *testing.T) {
	svc, userRepo := newAuthFixture(t, time.Hour)
	user := createTestUser(t, userRepo, "verifier@example.com", "secret123", claim.RoleVerifier)

	token, loggedIn, err := svc.Login(context.Background(), "verifier@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	actor, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor.ID)
	assert.Equal(t, claim.RoleVerifier, actor.Role)
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	svc, userRepo := newAuthFixture(t, time.Hour)
	createTestUser(t, userRepo, "user@example.com", "secret123", claim.RoleUser)

	_, _, err := svc.Login(context.Background(), "user@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_VerifyRejectsGarbage(t *testing.T) {
	svc, _ := newAuthFixture(t, time.Hour)

	_, err := svc.Verify("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Verify("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsExpiredToken(t *testing.T) {
	svc, userRepo := newAuthFixture(t, -time.Minute)
	createTestUser(t, userRepo, "user@example.com", "secret123", claim.RoleUser)

	token, _, err := svc.Login(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyRejectsForeignSignature(t *testing.T) {
	svc, userRepo := newAuthFixture(t, time.Hour)
	createTestUser(t, userRepo, "user@example.com", "secret123", claim.RoleUser)

	token, _, err := svc.Login(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)

	other := NewService(nil, "different-secret", time.Hour, zap.NewNop())
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword(hash, "password123"))
	assert.False(t, CheckPassword(hash, "password124"))
	assert.False(t, CheckPassword("", "password123"))
}
