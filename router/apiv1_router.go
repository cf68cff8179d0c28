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

package router

import (
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/l3montree-dev/dashcase/middlewares"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIV1Router struct {
	*echo.Group
}

func NewAPIV1Router(srv *echo.Echo,
	cfg config.Config,
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
) APIV1Router {
	srv.Static(shared.StaticPrefix, cfg.UploadDir)

	apiV1Router := srv.Group("/api/v1")

	apiV1Router.GET("/health/", healthController.Health)
	apiV1Router.GET("/metrics/", echo.WrapHandler(promhttp.Handler()))

	authRouter := apiV1Router.Group("/auth", middlewares.AuthRateLimiter())
	authRouter.POST("/login/", authController.Login)
	authRouter.POST("/register/", authController.Register)

	return APIV1Router{
		Group: apiV1Router,
	}
}
