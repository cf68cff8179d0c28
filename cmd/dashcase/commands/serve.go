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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/l3montree-dev/dashcase/accesscontrol"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/integrations/gitlabint"
	"github.com/l3montree-dev/dashcase/middlewares"
	"github.com/l3montree-dev/dashcase/monitoring"
	"github.com/l3montree-dev/dashcase/pubsub"
	"github.com/l3montree-dev/dashcase/router"
	"github.com/l3montree-dev/dashcase/services"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func NewServeCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the api server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateForServing(); err != nil {
				return err
			}

			if cfg.ErrorTrackingDSN != "" {
				initSentry(cfg)
				defer func() {
					if err := recover(); err != nil {
						sentry.CurrentHub().Recover(err)
						sentry.Flush(time.Second * 5)
					}
				}()
			}

			shutdownTracing, err := monitoring.InitTracing(cmd.Context(), cfg.OTLPEndpoint, cfg.Environment, config.Version)
			if err != nil {
				return fmt.Errorf("could not init tracing: %w", err)
			}
			defer shutdownTracing(context.Background()) // nolint:errcheck

			pool, db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := migrateIfEnabled(cfg, db); err != nil {
				return err
			}

			fx.New(
				fx.Supply(cfg, db, pool),
				fx.Provide(middlewares.Server),
				pubsub.Module,
				repositories.Module,
				services.Module,
				accesscontrol.Module,
				gitlabint.Module,
				controllers.ControllerModule,
				router.RouterModule,

				// every router has to be invoked to register its routes
				fx.Invoke(func(router.SessionRouter) {}),
				fx.Invoke(func(router.CatalogRouter) {}),
				fx.Invoke(func(router.TestRequestRouter) {}),
				fx.Invoke(func(router.PipelineRouter) {}),
				fx.Invoke(startWorkers),
				fx.Invoke(startServer),
			).Run()
			return nil
		},
	}

	serve.Flags().Int("port", 0, "port to listen on (overrides PORT)")
	return serve
}

func startWorkers(lc fx.Lifecycle, dispatcher shared.NotificationDispatcher, integrationService shared.IntegrationService) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			if err := dispatcher.Start(ctx); err != nil {
				return err
			}
			if err := integrationService.ListenForChanges(ctx); err != nil {
				// notifications keep working, cached gitlab clients are just not invalidated across instances
				slog.Warn("could not listen for integration changes", "err", err)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, srv *echo.Echo, cfg config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				slog.Info("starting server", "port", cfg.Port, "version", config.Version)
				if err := srv.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
					monitoring.Alert("server stopped unexpectedly", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func initSentry(cfg config.Config) {
	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.ErrorTrackingDSN,
		Environment: cfg.Environment,
		Release:     config.Version,

		Debug:            cfg.IsDev(),
		AttachStacktrace: true,
		SendDefaultPII:   false,
	})
	if err != nil {
		slog.Error("Failed to init sentry", "err", err)
	}
}
