// Command seed populates a fresh database with one demo user per role
// and a couple of draft claims, for local development.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/aqitech/claimflow/internal/auth"
	"github.com/aqitech/claimflow/internal/config"
	"github.com/aqitech/claimflow/internal/domain/claim"
	"github.com/aqitech/claimflow/internal/repository"
	"github.com/aqitech/claimflow/internal/service"
	"github.com/aqitech/claimflow/pkg/database"
	"github.com/aqitech/claimflow/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	configPath := "configs/config.yaml"
	if p := os.Getenv("CLAIMFLOW_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{Level: "info", OutputPath: "stdout", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("Failed to create data directory", zap.Error(err))
		}
	}

	db, err := database.Open(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(ctx, cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db.DB, logger)
	claimRepo := repository.NewClaimRepository(db.DB, logger)
	claimService := service.NewClaimService(claimRepo, logger)

	users := []struct {
		name  string
		email string
		role  claim.Role
	}{
		{"John (User)", "user@aqi.com", claim.RoleUser},
		{"Jane (Verifier)", "verifier@aqi.com", claim.RoleVerifier},
		{"Boss (Approver)", "approver@aqi.com", claim.RoleApprover},
	}

	var owner *claim.User
	for _, u := range users {
		existing, err := userRepo.GetByEmail(ctx, u.email)
		if err != nil {
			logger.Fatal("Failed to check user", zap.String("email", u.email), zap.Error(err))
		}
		if existing != nil {
			logger.Info("User already seeded", zap.String("email", u.email))
			if u.role == claim.RoleUser {
				owner = existing
			}
			continue
		}

		hash, err := auth.HashPassword("password123")
		if err != nil {
			logger.Fatal("Failed to hash password", zap.Error(err))
		}

		user := &claim.User{Name: u.name, Email: u.email, PasswordHash: hash, Role: u.role}
		if err := userRepo.Create(ctx, user); err != nil {
			logger.Fatal("Failed to create user", zap.String("email", u.email), zap.Error(err))
		}
		logger.Info("Seeded user", zap.String("email", u.email), zap.String("role", u.role.String()))

		if u.role == claim.RoleUser {
			owner = user
		}
	}

	if owner == nil {
		logger.Fatal("No User-role account available for sample claims")
	}

	existing, err := claimRepo.ListByOwner(ctx, owner.ID)
	if err != nil {
		logger.Fatal("Failed to list claims", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("Sample claims already seeded", zap.Int("count", len(existing)))
		return
	}

	samples := []service.CreateClaimInput{
		{Title: "Dental treatment claim", Description: "Tooth filling at the nearby clinic", Amount: 500000},
		{Title: "Hospitalization claim", Description: "Two nights of inpatient care", Amount: 2500000},
	}
	for _, in := range samples {
		c, err := claimService.Create(ctx, owner.ID, in)
		if err != nil {
			logger.Fatal("Failed to create sample claim", zap.Error(err))
		}
		logger.Info("Seeded claim", zap.Int64("claim_id", c.ID), zap.String("title", c.Title))
	}
}
