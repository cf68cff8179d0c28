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

package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/l3montree-dev/dashcase/shared"
)

const healthCheckTimeout = 2 * time.Second

type HealthController struct {
	db  shared.DB
	now func() time.Time
}

func NewHealthController(db shared.DB) *HealthController {
	return &HealthController{
		db:  db,
		now: time.Now,
	}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *HealthController) Health(ctx shared.Context) error {
	sqlDB, err := c.db.DB()
	if err == nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthCheckTimeout)
		defer cancel()
		err = sqlDB.PingContext(pingCtx)
	}

	if err != nil {
		slog.Error("health check failed", "err", err)
		return ctx.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unhealthy", Timestamp: c.now()})
	}
	return ctx.JSON(http.StatusOK, healthResponse{Status: "ok", Timestamp: c.now()})
}
