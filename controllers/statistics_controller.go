package controllers

import (
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
)

type StatisticsController struct {
	statisticsService shared.StatisticsService
}

func NewStatisticsController(statisticsService shared.StatisticsService) *StatisticsController {
	return &StatisticsController{
		statisticsService: statisticsService,
	}
}

func (c *StatisticsController) Stats(ctx shared.Context) error {
	stats, err := c.statisticsService.GetDashboardStats(ctx.Request().Context())
	if err != nil {
		return err
	}
	return shared.OK(ctx, stats)
}

func (c *StatisticsController) Activity(ctx shared.Context) error {
	limit := shared.GetBoundedInt(ctx, "limit", 10, 1, 50)
	activity, err := c.statisticsService.GetActivity(ctx.Request().Context(), limit)
	if err != nil {
		return err
	}
	return shared.OK(ctx, activity)
}

func (c *StatisticsController) TestCaseStats(ctx shared.Context) error {
	stats, err := c.statisticsService.GetTestCaseStats(ctx.Request().Context(), dtos.TestCaseFilter{
		ApplicationID: shared.GetOptionalQuery(ctx, "applicationId"),
		GroupID:       shared.GetOptionalQuery(ctx, "groupId"),
	})
	if err != nil {
		return err
	}
	return shared.OK(ctx, stats)
}

func (c *StatisticsController) PipelineStats(ctx shared.Context) error {
	days := shared.GetBoundedInt(ctx, "days", 7, 1, 90)
	stats, err := c.statisticsService.GetPipelineStats(ctx.Request().Context(), days)
	if err != nil {
		return err
	}
	return shared.OK(ctx, stats)
}
