package commands

import (
	"log/slog"

	"github.com/l3montree-dev/dashcase/database"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Run the database migrations and exit",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.RunMigrationsWithDB(db); err != nil {
				return err
			}

			version, dirty, err := database.GetMigrationVersionWithDB(db)
			if err != nil {
				return err
			}
			slog.Info("database migrated", "version", version, "dirty", dirty)
			return nil
		},
	}

	return &migrate
}
