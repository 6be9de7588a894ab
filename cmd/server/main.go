package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/escrowline/backend/internal/config"
	"github.com/escrowline/backend/internal/database"
	"github.com/escrowline/backend/internal/server"
	"github.com/escrowline/backend/internal/workflow/service"
)

var rootCmd = &cobra.Command{
	Use:   "escrowline",
	Short: "Real-estate transaction backend",
	// Without a subcommand the API is served.
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema without serving",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetBool("seed-templates")
		return migrate(cmd.Context(), seed)
	},
}

func main() {
	migrateCmd.Flags().Bool("seed-templates", false, "Insert the default task templates that are missing")
	rootCmd.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration, installs the logger and opens the database.
func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.SetDefault(server.NewLogger(cfg.Log, os.Stdout))

	slog.Info("configuration loaded successfully",
		"db_driver", cfg.Database.Driver,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.Name,
		"storage", cfg.Storage.Type,
		"mail_provider", cfg.Mail.Provider,
	)
	slog.Info("CORS configuration",
		"allowed_origins", cfg.CORS.AllowedOrigins,
		"allow_credentials", cfg.CORS.AllowCredentials,
	)

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func closeDB(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}

func serve(ctx context.Context) error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := database.HealthCheck(ctx, db); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	srv, err := server.New(ctx, cfg, db)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func migrate(ctx context.Context, seedTemplates bool) error {
	_, db, err := setup()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := database.Migrate(db, server.Models()...); err != nil {
		return err
	}

	if !seedTemplates {
		return nil
	}
	added, err := service.NewTemplateService(db).SeedDefaultTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}
	slog.Info("default templates seeded", "added", added)
	return nil
}
