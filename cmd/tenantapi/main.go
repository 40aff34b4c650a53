// Command tenantapi runs the tenant directory API: a cached CRUD facade over
// an upstream directory service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"tenant-api/internal/app"
	"tenant-api/internal/config"
	"tenant-api/internal/db"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tenantapi",
		Short:         "Tenant directory API server",
		Long:          "REST facade over an upstream directory service, backed by a local SQLite cache.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newSyncCmd(), newMigrateCmd())
	return rootCmd
}

// loadEnv reads an optional .env file and the process environment.
func loadEnv() (*config.Config, *slog.Logger, error) {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func openDatabase(cfg *config.Config) (writeDB, readDB *sql.DB, err error) {
	writeDB, readDB, err = db.OpenSQLitePair(cfg.DBPath, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.RunMigrations(writeDB); err != nil {
		_ = writeDB.Close()
		_ = readDB.Close()
		return nil, nil, err
	}
	return writeDB, readDB, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations, start the sync job and serve HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}

			writeDB, readDB, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			a := app.New(app.Deps{
				Cfg:     cfg,
				WriteDB: writeDB,
				ReadDB:  readDB,
				Logger:  logger,
			})

			if err := a.Sync.Start(cmd.Context()); err != nil {
				return err
			}
			defer a.Sync.Stop()

			srv := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           a.Router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.ListenAddr, "auth", cfg.AuthEnabled())
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case sig := <-stop:
				logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					return fmt.Errorf("shutdown: %w", err)
				}
			}
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run a single cache sync pass and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}

			writeDB, readDB, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			a := app.New(app.Deps{
				Cfg:     cfg,
				WriteDB: writeDB,
				ReadDB:  readDB,
				Logger:  logger,
			})

			if err := a.Sync.RunOnce(cmd.Context()); err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			logger.Info("sync complete")
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending cache schema migrations and exit",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadEnv()
			if err != nil {
				return err
			}

			writeDB, readDB, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer writeDB.Close()
			defer readDB.Close()

			logger.Info("migrations applied", "db", cfg.DBPath)
			return nil
		},
	}
}
