package main

// Run database migrations for the unlock session registry:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"biography-site/internal/shared/config"
	"biography-site/internal/shared/storage/db"
	"biography-site/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	target, err := db.ParseURL(cfg.DatabaseURL)
	if err != nil {
		telemetry.Error("migrate.bad_url", map[string]any{"error": err})
		os.Exit(1)
	}

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"error": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB, target.Dialect); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"error": err})
		os.Exit(1)
	}
	version, err := db.MigrationStatus(ctx, sqlDB, target.Dialect)
	if err != nil {
		telemetry.Warn("migrate.status_failed", map[string]any{"error": err})
		return
	}
	telemetry.Info("migrate.done", map[string]any{"dialect": string(target.Dialect), "version": version})
}
