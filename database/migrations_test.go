package database_test

import (
	"testing"

	"github.com/l3montree-dev/dashcase/database"
	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMigrationsWithDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	db, _, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	t.Run("should leave the schema at a clean version", func(t *testing.T) {
		version, dirty, err := database.GetMigrationVersionWithDB(db)
		require.NoError(t, err)
		assert.False(t, dirty)
		assert.Equal(t, uint(1), version)
	})

	t.Run("should be a noop when already migrated", func(t *testing.T) {
		assert.NoError(t, database.RunMigrationsWithDB(db))
	})

	t.Run("should create the domain tables", func(t *testing.T) {
		for _, table := range []string{"users", "groups", "applications", "features", "test_cases", "gherkin_steps", "test_requests", "gitlab_pipelines", "test_case_pipeline_results", "integration_configs", "notification_logs"} {
			assert.True(t, db.Migrator().HasTable(table), table)
		}
	})
}
