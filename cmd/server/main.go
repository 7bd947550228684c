package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"memberquery/pkg/api"
	"memberquery/pkg/config"
	"memberquery/pkg/member"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	db, err := openDB(cfg)
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DatabaseDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := bootstrap(context.Background(), cfg, db); err != nil {
		slog.Error("failed to prepare database", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterDeps{
		DB:              db,
		Members:         member.NewMemberRepository(db),
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting member query server", "port", cfg.Port, "driver", cfg.DatabaseDriver, "profile", cfg.Profile)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseDriver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// bootstrap creates the tables and, for the local profile, loads sample data into an empty database.
func bootstrap(ctx context.Context, cfg *config.Config, db *sqlx.DB) error {
	if err := member.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	if !cfg.SeedEnabled() {
		return nil
	}

	teams := member.NewTeamRepository(db)
	existing, err := teams.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("checking seed data: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("skipping seed, teams already present", "teams", len(existing))
		return nil
	}
	return member.Seed(ctx, teams, member.NewMemberRepository(db), cfg.SeedMembers)
}
