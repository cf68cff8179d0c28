package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/services"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeedFixture(t *testing.T) {
	fixture, err := services.ParseSeedFixture(defaultSeedFixture)
	require.NoError(t, err)

	t.Run("should contain groups and users", func(t *testing.T) {
		assert.Len(t, fixture.Groups, 3)
		assert.Len(t, fixture.Users, 2)
	})

	t.Run("should only subscribe users to groups of the fixture", func(t *testing.T) {
		names := utils.Map(fixture.Groups, func(g services.SeedGroup) string { return g.Name })
		for _, u := range fixture.Users {
			for _, g := range u.Groups {
				assert.Contains(t, names, g, "user %s", u.Email)
			}
		}
	})

	t.Run("should only use valid enum values", func(t *testing.T) {
		for _, g := range fixture.Groups {
			for _, a := range g.Applications {
				for _, f := range a.Features {
					assert.True(t, f.Status.IsValid(), f.Name)
					for _, tc := range f.TestCases {
						assert.True(t, tc.Type.IsValid(), tc.Name)
						assert.True(t, tc.Priority.IsValid(), tc.Name)
						assert.True(t, tc.Status.IsValid(), tc.Name)
						for _, step := range tc.Steps {
							assert.True(t, step.Type.IsValid(), step.Text)
						}
					}
				}
			}
		}
	})
}

func TestReadSeedFixture(t *testing.T) {
	t.Run("should return the embedded fixture without a path", func(t *testing.T) {
		content, err := readSeedFixture("")
		require.NoError(t, err)
		assert.Equal(t, defaultSeedFixture, content)
	})

	t.Run("should read the given file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("groups: []\n"), 0o600))

		content, err := readSeedFixture(path)
		require.NoError(t, err)
		assert.Equal(t, "groups: []\n", string(content))
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		_, err := readSeedFixture(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestPrintUsers(t *testing.T) {
	t.Run("should print one row per user", func(t *testing.T) {
		var buf bytes.Buffer
		printUsers(&buf, []models.User{{
			Model:     models.Model{ID: "u1", CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Role:      models.UserRoleAdmin,
			Status:    models.UserStatusActive,
		}})

		out := buf.String()
		assert.Contains(t, out, "EMAIL")
		assert.Contains(t, out, "ada@example.com")
		assert.Contains(t, out, "Ada Lovelace")
		assert.Contains(t, out, "ADMIN")
		assert.Contains(t, out, "2025-03-01")
	})
}

func TestRootCommand(t *testing.T) {
	t.Run("should register the subcommands", func(t *testing.T) {
		root := GetRootCmd()
		root.AddCommand(NewServeCommand(), NewMigrateCommand(), NewSeedCommand(), NewUserCommand())

		for _, name := range []string{"serve", "migrate", "seed", "user"} {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
		}
		cmd, _, err := root.Find([]string{"user", "create-admin"})
		require.NoError(t, err)
		assert.NotNil(t, cmd.Flags().Lookup("first-name"))
	})
}
