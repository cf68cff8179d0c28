// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package commands

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/spf13/cobra"
)

//go:embed fixtures/seed.yaml
var defaultSeedFixture []byte

func readSeedFixture(path string) ([]byte, error) {
	if path == "" {
		return defaultSeedFixture, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read seed file: %w", err)
	}
	return content, nil
}

func NewSeedCommand() *cobra.Command {
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Seed users, groups, applications, features and test cases",
		Long:  `Creates every entity of the fixture which does not exist yet. Running the command twice is safe.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			fixture, err := readSeedFixture(file)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pool, db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := migrateIfEnabled(cfg, db); err != nil {
				return err
			}

			var seedService shared.SeedService
			if err := withServices(cfg, pool, db, &seedService); err != nil {
				return err
			}

			result, err := seedService.Seed(cmd.Context(), fixture)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d users, %d groups, %d applications, %d features and %d test cases\n",
				result.Users, result.Groups, result.Applications, result.Features, result.TestCases)
			return nil
		},
	}

	seed.Flags().StringP("file", "f", "", "path to a yaml fixture (defaults to the built-in fixture)")
	return seed
}
