package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lms-backend/internal/data/repository"
	"lms-backend/internal/wire"
	"lms-backend/pkg/database"
	"lms-backend/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the passcode sweeper",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		if migrateOnStart {
			if err := database.MigrateUp(config.Database); err != nil {
				return err
			}
			logger.Info("Migrations applied")
		}

		db, err := database.InitDB(config.Database)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
		logger.Info("Database connected successfully")

		store, err := storage.New(ctx, config.Storage)
		if err != nil {
			return fmt.Errorf("init object storage: %w", err)
		}
		if store != nil {
			if err := store.EnsureBucket(ctx); err != nil {
				logger.Warn("Object storage bucket check failed, uploads may fail",
					zap.Error(err),
					zap.String("bucket", store.Bucket()),
				)
			}
		} else {
			logger.Info("No storage driver configured, uploads disabled")
		}

		repos := repository.NewRepository(db, logger)

		app, err := wire.Wiring(repos, store, config, logger)
		if err != nil {
			return err
		}

		go app.Issuer.RunSweeper(ctx)

		return runServer(ctx, app.Router, config.App.Port, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

// runServer serves until ctx is cancelled, then drains in-flight requests.
func runServer(ctx context.Context, handler http.Handler, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
