package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned when login credentials do not match
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrInvalidToken is returned when a bearer token fails verification
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload: the acting identity the rest of the system
// trusts without re-checking.
type Claims struct {
	Role claim.Role `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies bearer tokens
type Service struct {
	userRepo *repository.UserRepository
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewService creates a new auth service
func NewService(userRepo *repository.UserRepository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

// Login verifies credentials and returns a signed token plus the user
func (s *Service) Login(ctx context.Context, email, password string) (string, *claim.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !CheckPassword(user.PasswordHash, password) {
		s.logger.Warn("Login rejected", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID), zap.String("role", user.Role.String()))
	return signed, user, nil
}

// Verify parses a bearer token and returns the actor it identifies
func (s *Service) Verify(tokenString string) (claim.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return claim.Actor{}, ErrInvalidToken
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil || userID <= 0 {
		return claim.Actor{}, ErrInvalidToken
	}
	if !claims.Role.IsValid() {
		return claim.Actor{}, ErrInvalidToken
	}

	return claim.Actor{ID: userID, Role: claims.Role}, nil
}
