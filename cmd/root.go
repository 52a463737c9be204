package cmd

import (
	"fmt"
	"os"

	"lms-backend/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "lms",
	Short: "LMS backend: REST API, migrations and maintenance jobs",
	// Errors are printed by Execute.
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to an env file; missing files are ignored")
}

// bootstrap loads config and the logger every subcommand needs.
func bootstrap() (*utils.Config, *zap.Logger, error) {
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v, using production defaults\n", err)
		logger, _ = zap.NewProduction()
	}

	return config, logger, nil
}
