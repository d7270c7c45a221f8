package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/cartview/pkg/config"
	"github.com/angelmondragon/cartview/pkg/db"
	"github.com/angelmondragon/cartview/pkg/enums"
	"github.com/angelmondragon/cartview/pkg/logger"
)

// MaybeAutoRun applies the embedded migrations on boot for SQL-backed stores
// when CARTVIEW_AUTO_MIGRATE is set. SQLite always migrates since its database
// is local to the process.
func MaybeAutoRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client == nil || !cfg.Store.UsesDB() {
		return nil
	}
	if !cfg.Store.AutoMigrate && cfg.Store.Driver != enums.StoreDriverSQLite {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dialect": client.Dialect()})
		logg.Info(ctx, "running goose migrations (auto-run)")
	}

	if err := Run(ctx, sqlDB, client.Dialect(), "", "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "goose migrations completed")
	}
	return nil
}
