package integrationtestutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSQLiteDatabase opens a fresh in-memory database with foreign keys enforced and all models migrated.
func InitSQLiteDatabase(t *testing.T) shared.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection would see its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)

	err = db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupSubscription{},
		&models.Application{},
		&models.Feature{},
		&models.TestCase{},
		&models.GherkinStep{},
		&models.GherkinSubStep{},
		&models.GitlabPipeline{},
		&models.TestCasePipelineResult{},
		&models.TestRequest{},
		&models.IntegrationConfig{},
		&models.NotificationLog{},
	)
	require.NoError(t, err)

	return db
}
