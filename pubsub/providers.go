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

package pubsub

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/shared"
	"go.uber.org/fx"
)

// Module wires the in-process notification broker and the postgres backed
// cluster broker used for cross-instance cache invalidation.
var Module = fx.Options(
	fx.Provide(func(lc fx.Lifecycle, cfg config.Config) shared.PubSubBroker {
		broker := NewInMemoryBroker(cfg.NotificationQueueSize)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			broker.Close()
			return nil
		}})
		return broker
	}),
	fx.Provide(func(lc fx.Lifecycle, pool *pgxpool.Pool) shared.ClusterBroker {
		broker := NewPostgreSQLBroker(pool)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			return broker.Close()
		}})
		return broker
	}),
)
