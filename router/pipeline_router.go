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
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
)

type PipelineRouter struct {
	*echo.Group
}

func NewPipelineRouter(sessionRouter SessionRouter, pipelineController *controllers.PipelineController, statisticsController *controllers.StatisticsController) PipelineRouter {
	pipelineRouter := sessionRouter.Group.Group("/pipelines")
	pipelineRouter.GET("/", pipelineController.List)
	pipelineRouter.POST("/results/", pipelineController.Register)
	pipelineRouter.POST("/sync/", pipelineController.Sync, sessionRouter.adminAccess(shared.ObjectPipeline, shared.ActionUpdate))
	pipelineRouter.GET("/:id/", pipelineController.Read)
	pipelineRouter.GET("/:id/results/", pipelineController.Results)

	dashboardRouter := sessionRouter.Group.Group("/dashboard")
	dashboardRouter.GET("/stats/", statisticsController.Stats)
	dashboardRouter.GET("/activity/", statisticsController.Activity)
	dashboardRouter.GET("/test-cases-stats/", statisticsController.TestCaseStats)
	dashboardRouter.GET("/pipeline-stats/", statisticsController.PipelineStats)

	return PipelineRouter{
		Group: pipelineRouter,
	}
}
