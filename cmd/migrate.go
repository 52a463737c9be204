package cmd

import (
	"lms-backend/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateDownSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if err := database.MigrateUp(config.Database); err != nil {
			return err
		}

		logger.Info("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert migrations, all of them unless --steps is set",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if err := database.MigrateDown(config.Database, migrateDownSteps); err != nil {
			return err
		}

		logger.Info("Migrations reverted", zap.Int("steps", migrateDownSteps))
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to revert; 0 reverts all")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
