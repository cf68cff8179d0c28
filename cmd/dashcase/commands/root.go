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
	"github.com/l3montree-dev/dashcase/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "dashcase",
	Short:   "Test case management dashboard",
	Long:    `dashcase serves the test case dashboard api and provides maintenance commands for its database.`,
	Version: config.Version,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
