package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/customercore-backend/pkg/config"
	"github.com/angelmondragon/customercore-backend/pkg/db"
	"github.com/angelmondragon/customercore-backend/pkg/logger"
)

// MaybeRunDev applies migrations on boot when the app runs in dev mode with the
// auto-migrate flag, or whenever the sqlite driver is selected (local databases
// are created on demand).
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	autoRun := cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
	if !autoRun && !cfg.DB.IsSQLite() {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"env":     cfg.App.Env,
		"dialect": Dialect(client.Driver()),
	})
	logg.Info(ctx, "running goose migrations")

	SetLogger(logg)
	if err := Up(ctx, sqlDB, client.Driver()); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}
