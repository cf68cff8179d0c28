package integrationtestutil

import (
	"context"
	"log"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// InitDatabaseContainer starts a postgres container and runs the embedded migrations against it.
// The returned function closes the pool and terminates the container.
func InitDatabaseContainer() (shared.DB, *pgxpool.Pool, func()) {
	ctx := context.Background()

	dbName := "dashcase"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		slog.Info("failed to start postgres container", "error", err)
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	pool, err := database.NewPgxConnPool(database.PoolConfigFromConfig(config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     dbUser,
		Password: dbPassword,
		DBName:   dbName,
	}))
	if err != nil {
		log.Printf("failed to connect to database: %s", err)
		panic(err)
	}

	db, err := database.NewGormDB(pool)
	if err != nil {
		log.Printf("failed to open gorm: %s", err)
		panic(err)
	}

	if err := database.RunMigrationsWithDB(db); err != nil {
		log.Printf("failed to run migrations: %s", err)
		panic(err)
	}

	return db, pool, func() {
		pool.Close()
		terminate()
	}
}
