package services

import (
	"context"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

const (
	recentPipelineWindow  = 7 * 24 * time.Hour
	activityPipelineLimit = 5
	statsRecentPipelines  = 20
	statisticsConcurrency = 4
)

type statisticsService struct {
	statisticsRepository shared.StatisticsRepository
	pipelineRepository   shared.PipelineRepository
	now                  func() time.Time
}

func NewStatisticsService(statisticsRepository shared.StatisticsRepository, pipelineRepository shared.PipelineRepository) *statisticsService {
	return &statisticsService{
		statisticsRepository: statisticsRepository,
		pipelineRepository:   pipelineRepository,
		now:                  time.Now,
	}
}

func count(target *int64, f func() (int64, error)) func() (any, error) {
	return func() (any, error) {
		v, err := f()
		*target = v
		return nil, err
	}
}

func (s *statisticsService) GetDashboardStats(ctx context.Context) (dtos.DashboardStatsDTO, error) {
	var stats dtos.DashboardStatsDTO
	overview := &stats.Overview
	pending := models.TestRequestStatusNew
	since := s.now().Add(-recentPipelineWindow)

	errgroup := utils.ErrGroup[any](statisticsConcurrency)
	errgroup.Go(count(&overview.TotalGroups, s.statisticsRepository.CountGroups))
	errgroup.Go(count(&overview.TotalApplications, s.statisticsRepository.CountActiveApplications))
	errgroup.Go(count(&overview.TotalFeatures, s.statisticsRepository.CountFeatures))
	errgroup.Go(count(&overview.TotalTestCases, s.statisticsRepository.CountTestCases))
	errgroup.Go(count(&overview.TotalRequests, func() (int64, error) {
		return s.statisticsRepository.CountTestRequests(nil)
	}))
	errgroup.Go(count(&overview.PendingRequests, func() (int64, error) {
		return s.statisticsRepository.CountTestRequests(&pending)
	}))
	errgroup.Go(count(&overview.RecentPipelines, func() (int64, error) {
		return s.statisticsRepository.CountPipelinesSince(since)
	}))
	errgroup.Go(func() (any, error) {
		var err error
		stats.TestCasesByStatus, err = s.statisticsRepository.TestCasesGroupedBy("status", dtos.TestCaseFilter{})
		return nil, err
	})
	errgroup.Go(func() (any, error) {
		var err error
		stats.RequestsByStatus, err = s.statisticsRepository.TestRequestsByStatus(nil)
		return nil, err
	})

	if _, err := errgroup.WaitAndCollect(); err != nil {
		return dtos.DashboardStatsDTO{}, shared.NewStorageError(err)
	}
	return stats, nil
}

func (s *statisticsService) GetActivity(ctx context.Context, limit int) (dtos.ActivityDTO, error) {
	testCases, err := s.statisticsRepository.RecentTestCases(limit)
	if err != nil {
		return dtos.ActivityDTO{}, shared.NewStorageError(err)
	}
	requests, err := s.statisticsRepository.RecentTestRequests(limit)
	if err != nil {
		return dtos.ActivityDTO{}, shared.NewStorageError(err)
	}
	pipelines, err := s.statisticsRepository.RecentPipelines(activityPipelineLimit, nil)
	if err != nil {
		return dtos.ActivityDTO{}, shared.NewStorageError(err)
	}

	return dtos.ActivityDTO{
		TestCases: utils.Map(testCases, transformer.TestCaseModelToActivityDTO),
		Requests:  utils.Map(requests, transformer.TestRequestModelToActivityDTO),
		Pipelines: utils.Map(pipelines, transformer.PipelineModelToRefDTO),
	}, nil
}

func (s *statisticsService) GetTestCaseStats(ctx context.Context, filter dtos.TestCaseFilter) (dtos.TestCaseStatsDTO, error) {
	var byStatus, byType, byPriority []dtos.StatusCount

	errgroup := utils.ErrGroup[any](statisticsConcurrency)
	errgroup.Go(func() (any, error) {
		var err error
		byStatus, err = s.statisticsRepository.TestCasesGroupedBy("status", filter)
		return nil, err
	})
	errgroup.Go(func() (any, error) {
		var err error
		byType, err = s.statisticsRepository.TestCasesGroupedBy("type", filter)
		return nil, err
	})
	errgroup.Go(func() (any, error) {
		var err error
		byPriority, err = s.statisticsRepository.TestCasesGroupedBy("priority", filter)
		return nil, err
	})
	if _, err := errgroup.WaitAndCollect(); err != nil {
		return dtos.TestCaseStatsDTO{}, shared.NewStorageError(err)
	}

	return dtos.TestCaseStatsDTO{
		ByStatus:   byStatus,
		ByType:     transformer.StatusCountsToTypeCounts(byType),
		ByPriority: transformer.StatusCountsToPriorityCounts(byPriority),
	}, nil
}

func (s *statisticsService) GetPipelineStats(ctx context.Context, days int) (dtos.PipelineStatsDTO, error) {
	since := s.now().AddDate(0, 0, -days)

	pipelinesByStatus, err := s.statisticsRepository.PipelinesByStatusSince(since)
	if err != nil {
		return dtos.PipelineStatsDTO{}, shared.NewStorageError(err)
	}
	resultsByStatus, err := s.statisticsRepository.ResultsByStatusSince(since)
	if err != nil {
		return dtos.PipelineStatsDTO{}, shared.NewStorageError(err)
	}
	recent, err := s.statisticsRepository.RecentPipelines(statsRecentPipelines, &since)
	if err != nil {
		return dtos.PipelineStatsDTO{}, shared.NewStorageError(err)
	}

	counts, err := s.pipelineRepository.Counts(utils.Map(recent, func(p models.GitlabPipeline) string { return p.ID }))
	if err != nil {
		return dtos.PipelineStatsDTO{}, shared.NewStorageError(err)
	}

	return dtos.PipelineStatsDTO{
		PipelinesByStatus:   pipelinesByStatus,
		TestResultsByStatus: resultsByStatus,
		RecentPipelines: utils.Map(recent, func(p models.GitlabPipeline) dtos.PipelineDTO {
			return transformer.PipelineModelToDTO(p, counts[p.ID])
		}),
	}, nil
}
