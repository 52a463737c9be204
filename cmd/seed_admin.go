package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lms-backend/internal/data/entity"
	"lms-backend/internal/data/repository"
	"lms-backend/pkg/database"
	"lms-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
	seedAdminName     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the admin account or reset its password",
	Long: `Creates the admin account used by POST /api/auth/admin-login, or resets its
password when the account already exists. Flags fall back to ADMIN_EMAIL and
ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		email := utils.NormalizeEmail(firstNonEmpty(seedAdminEmail, config.Admin.Email))
		password := firstNonEmpty(seedAdminPassword, config.Admin.Password)

		db, err := database.InitDB(config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		created, err := seedAdmin(cmd.Context(), repository.NewUserRepository(db, logger), email, password, seedAdminName, time.Now())
		if err != nil {
			return err
		}

		logger.Info("Admin account ready", zap.String("email", email), zap.Bool("created", created))
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedAdminEmail, "email", "", "admin email (default $ADMIN_EMAIL)")
	seedAdminCmd.Flags().StringVar(&seedAdminPassword, "password", "", "admin password (default $ADMIN_PASSWORD)")
	seedAdminCmd.Flags().StringVar(&seedAdminName, "name", "Administrator", "display name for a new admin")
	rootCmd.AddCommand(seedAdminCmd)
}

const minAdminPasswordLen = 8

var (
	errSeedInput  = errors.New("admin email and password are required")
	errNotAnAdmin = errors.New("an account with this email exists and is not an admin")
)

// seedAdmin reports whether a new account was created.
func seedAdmin(ctx context.Context, users repository.UserRepository, email, password, name string, now time.Time) (bool, error) {
	if email == "" || password == "" {
		return false, errSeedInput
	}
	if len(password) < minAdminPasswordLen {
		return false, fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLen)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("find admin: %w", err)
	}

	if existing != nil {
		if !existing.IsAdmin() {
			return false, errNotAnAdmin
		}
		if err := users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return false, fmt.Errorf("reset admin password: %w", err)
		}
		return false, nil
	}

	admin := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		PasswordHash: &hash,
	}

	if err := users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
