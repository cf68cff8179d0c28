package commands

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/integrations/gitlabint"
	"github.com/l3montree-dev/dashcase/pubsub"
	"github.com/l3montree-dev/dashcase/services"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	shared.InitLogger(cfg.LogLevel)
	return cfg, nil
}

func openDatabase(cfg config.Config) (*pgxpool.Pool, shared.DB, error) {
	pool, err := database.NewPgxConnPool(database.PoolConfigFromConfig(cfg.Database))
	if err != nil {
		return nil, nil, err
	}
	db, err := database.NewGormDB(pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("could not open database: %w", err)
	}
	return pool, db, nil
}

func migrateIfEnabled(cfg config.Config, db shared.DB) error {
	if cfg.DisableAutoMigrate {
		slog.Info("automatic migrations disabled via DISABLE_AUTOMIGRATE=true")
		return nil
	}
	slog.Info("running database migrations...")
	if err := database.RunMigrationsWithDB(db); err != nil {
		return fmt.Errorf("could not run database migrations: %w", err)
	}
	return nil
}

// withServices builds the service layer without starting any lifecycle hooks
// and fills the given targets from it.
func withServices(cfg config.Config, pool *pgxpool.Pool, db shared.DB, targets ...any) error {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg, db, pool),
		pubsub.Module,
		repositories.Module,
		services.Module,
		gitlabint.Module,
		fx.Populate(targets...),
	)
	return app.Err()
}
