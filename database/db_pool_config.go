// Copyright (C) 2025 l3montree GmbH
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

package database

import (
	"time"

	"github.com/l3montree-dev/dashcase/config"
)

// PoolConfig holds database connection pool configuration
type PoolConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	DBName   string

	MaxOpenConns    int32
	MinConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// PoolConfigFromConfig maps the database section of the configuration.
// Invalid sizes fall back to the defaults.
func PoolConfigFromConfig(cfg config.DatabaseConfig) PoolConfig {
	pc := PoolConfig{
		User:            cfg.User,
		Password:        cfg.Password,
		Host:            cfg.Host,
		Port:            cfg.Port,
		DBName:          cfg.DBName,
		MaxOpenConns:    cfg.MaxOpenConns,
		MinConns:        cfg.MinConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}

	if pc.MaxOpenConns <= 0 {
		pc.MaxOpenConns = 25
	}
	if pc.MinConns < 0 || pc.MinConns > pc.MaxOpenConns {
		pc.MinConns = 5
		if pc.MinConns > pc.MaxOpenConns {
			pc.MinConns = pc.MaxOpenConns
		}
	}
	if pc.ConnMaxLifetime <= 0 {
		pc.ConnMaxLifetime = 4 * time.Hour
	}
	if pc.ConnMaxIdleTime <= 0 {
		pc.ConnMaxIdleTime = 15 * time.Minute
	}
	return pc
}
