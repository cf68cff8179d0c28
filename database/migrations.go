package database

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/l3montree-dev/dashcase/shared"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsTable = "schema_migrations"

// closing a migrator closes the underlying pool, so one instance lives for the whole process
var schemaMigrator = struct {
	once sync.Once
	m    *migrate.Migrate
	err  error
}{}

func loadMigrator(gormDB shared.DB) (*migrate.Migrate, error) {
	schemaMigrator.once.Do(func() {
		schemaMigrator.m, schemaMigrator.err = newMigrator(gormDB)
	})
	if schemaMigrator.err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", schemaMigrator.err)
	}
	return schemaMigrator.m, nil
}

func newMigrator(gormDB shared.DB) (*migrate.Migrate, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}
	return migrate.NewWithInstance("iofs", source, "postgres", driver)
}

// RunMigrationsWithDB applies every pending migration. A dirty schema is
// reported and has to be repaired by hand.
func RunMigrationsWithDB(gormDB shared.DB) error {
	m, err := loadMigrator(gormDB)
	if err != nil {
		return err
	}

	if version, dirty, err := m.Version(); err == nil && dirty {
		return fmt.Errorf("database schema is dirty at version %d", version)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		slog.Info("no pending migrations")
		return nil
	case err != nil:
		return fmt.Errorf("could not apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	slog.Info("migrations applied", "version", version)
	return nil
}

// GetMigrationVersionWithDB returns the applied schema version. An empty
// database reports version 0.
func GetMigrationVersionWithDB(gormDB shared.DB) (uint, bool, error) {
	m, err := loadMigrator(gormDB)
	if err != nil {
		return 0, false, err
	}
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}
