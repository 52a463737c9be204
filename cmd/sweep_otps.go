package cmd

import (
	"fmt"

	"lms-backend/internal/credential"
	"lms-backend/internal/data/repository"
	"lms-backend/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sweepOTPsCmd = &cobra.Command{
	Use:   "sweep-otps",
	Short: "Delete expired passcodes once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		db, err := database.InitDB(config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		// Sweeping never mails or signs.
		issuer := credential.NewIssuer(repository.NewOTPRepository(db, logger), nil, nil, logger)

		removed, err := issuer.SweepExpired(cmd.Context())
		if err != nil {
			return err
		}

		logger.Info("Expired passcodes removed", zap.Int64("count", removed))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepOTPsCmd)
}
