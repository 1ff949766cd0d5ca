package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("cannot load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.LogLevel)

	if err := run(context.Background(), cfg, *command, *name); err != nil {
		log.Error("migration failed", "command", *command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, command, name string) error {
	if command == "create" {
		if name == "" {
			return fmt.Errorf("name is required for 'create' command")
		}
		if err := goose.Create(nil, cfg.MigrationsDir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		slog.Info("migration created", "name", name)
		return nil
	}

	poolCfg, err := poolConfig(cfg.DatabaseDSN, cfg.DatabaseSchema)
	if err != nil {
		return err
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := ensureSchema(ctx, pool, cfg.DatabaseSchema); err != nil {
		return fmt.Errorf("create schema %s: %w", cfg.DatabaseSchema, err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	switch command {
	case "up":
		if err := goose.UpContext(ctx, db, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		slog.Info("migrations applied", "schema", cfg.DatabaseSchema)
	case "down":
		if err := goose.DownContext(ctx, db, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("roll back migration: %w", err)
		}
		slog.Info("migration rolled back", "schema", cfg.DatabaseSchema)
	case "status":
		if err := goose.StatusContext(ctx, db, cfg.MigrationsDir); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
	default:
		return fmt.Errorf("unknown command %q, use: up, down, status, create", command)
	}
	return nil
}
