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

package middlewares

import (
	"strings"

	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

func registerMiddlewares(e *echo.Echo, cfg config.Config) {
	e.Pre(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		// uploaded files are served by their exact name
		Skipper: func(ctx echo.Context) bool {
			return strings.HasPrefix(ctx.Request().URL.Path, shared.StaticPrefix+"/")
		},
	}))
	e.Use(middleware.CORSWithConfig(
		middleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowHeaders:     append(middleware.DefaultCORSConfig.AllowHeaders, echo.HeaderAuthorization),
			AllowMethods:     middleware.DefaultCORSConfig.AllowMethods,
			AllowCredentials: true,
		},
	))

	e.Use(otelecho.Middleware("dashcase"))

	e.Use(logger())

	e.Use(recovermiddleware())

	e.HTTPErrorHandler = errorHandler
}

func Server(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(99)
	e.Debug = cfg.IsDev()
	registerMiddlewares(e, cfg)
	return e
}
