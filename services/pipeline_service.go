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

package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/monitoring"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/pkg/errors"
)

const (
	defaultBranch        = "main"
	pipelineSyncPageSize = 20
)

type pipelineService struct {
	pipelineRepository    shared.PipelineRepository
	testCaseRepository    shared.TestCaseRepository
	applicationRepository shared.ApplicationRepository
	integrationService    shared.IntegrationService
	notificationService   shared.NotificationService
	now                   func() time.Time
}

func NewPipelineService(
	pipelineRepository shared.PipelineRepository,
	testCaseRepository shared.TestCaseRepository,
	applicationRepository shared.ApplicationRepository,
	integrationService shared.IntegrationService,
	notificationService shared.NotificationService,
) *pipelineService {
	return &pipelineService{
		pipelineRepository:    pipelineRepository,
		testCaseRepository:    testCaseRepository,
		applicationRepository: applicationRepository,
		integrationService:    integrationService,
		notificationService:   notificationService,
		now:                   time.Now,
	}
}

func (s *pipelineService) RegisterResults(ctx context.Context, req dtos.RegisterPipelineRequest) (models.GitlabPipeline, error) {
	return s.register(ctx, req, true)
}

func (s *pipelineService) register(ctx context.Context, req dtos.RegisterPipelineRequest, notify bool) (models.GitlabPipeline, error) {
	start := time.Now()
	defer func() {
		monitoring.PipelineRegistrationDuration.Observe(time.Since(start).Seconds())
	}()

	status := req.PipelineStatus
	if status == "" {
		status = models.PipelineStatusPassed
	}
	branch := req.Branch
	if branch == "" {
		branch = defaultBranch
	}

	var pipeline models.GitlabPipeline
	hasFailures := false

	err := s.pipelineRepository.Transaction(func(tx shared.DB) error {
		var err error
		pipeline, err = s.upsertPipeline(tx, req, status, branch)
		if err != nil {
			return err
		}

		for _, input := range req.TestResults {
			testCase, found, err := s.resolveTestCase(tx, input)
			if err != nil {
				return err
			}
			if !found {
				monitoring.PipelineResultsUnmatched.Inc()
				slog.Debug("skipping result without matching test case", "testCaseID", input.TestCaseID, "scenarioName", input.ScenarioName)
				continue
			}

			result, updateColumns := resultFromInput(input, testCase.ID, pipeline.ID)
			if err := s.pipelineRepository.UpsertResult(tx, &result, updateColumns); err != nil {
				return errors.Wrap(err, "could not upsert pipeline result")
			}
			monitoring.PipelineResultsRecorded.WithLabelValues(string(result.Status)).Inc()
		}

		if pipeline.Status == models.PipelineStatusFailed {
			hasFailures = true
			return nil
		}
		hasFailures, err = s.pipelineRepository.HasFailedResults(tx, pipeline.ID)
		return err
	})
	if err != nil {
		return models.GitlabPipeline{}, shared.NewStorageError(err)
	}

	monitoring.PipelineRegistrations.WithLabelValues(string(pipeline.Status)).Inc()
	slog.Info("pipeline results registered", "gitlabProjectID", pipeline.GitlabProjectID, "gitlabPipelineID", pipeline.GitlabPipelineID, "results", len(req.TestResults))

	if notify && hasFailures {
		s.notifyPipelineFailed(ctx, pipeline)
	}
	return pipeline, nil
}

func (s *pipelineService) upsertPipeline(tx shared.DB, req dtos.RegisterPipelineRequest, status models.PipelineStatus, branch string) (models.GitlabPipeline, error) {
	pipeline, err := s.pipelineRepository.FindByProjectAndPipeline(tx, req.GitlabProjectID, req.GitlabPipelineID)
	if err == nil {
		pipeline.Status = status
		pipeline.Branch = branch
		if url := utils.SafeDereference(req.WebURL); url != "" {
			pipeline.WebURL = &url
		}
		if err := s.pipelineRepository.Save(tx, &pipeline); err != nil {
			return models.GitlabPipeline{}, errors.Wrap(err, "could not update pipeline")
		}
		return pipeline, nil
	}
	if !shared.IsNotFound(err) {
		return models.GitlabPipeline{}, err
	}

	executedAt := s.now()
	if req.ExecutedAt != nil && !req.ExecutedAt.IsZero() {
		executedAt = *req.ExecutedAt
	}
	pipeline = models.GitlabPipeline{
		GitlabProjectID:  req.GitlabProjectID,
		GitlabPipelineID: req.GitlabPipelineID,
		Branch:           branch,
		Status:           status,
		WebURL:           utils.EmptyThenNil(utils.SafeDereference(req.WebURL)),
		ExecutedAt:       executedAt,
	}
	if err := s.pipelineRepository.CreateIfAbsent(tx, &pipeline); err != nil {
		return models.GitlabPipeline{}, errors.Wrap(err, "could not create pipeline")
	}
	// a concurrent registration might have inserted the row first
	return s.pipelineRepository.FindByProjectAndPipeline(tx, req.GitlabProjectID, req.GitlabPipelineID)
}

// resolveTestCase matches by id when one is given. The scenario name is only used for
// results without a test case id.
func (s *pipelineService) resolveTestCase(tx shared.DB, input dtos.TestResultInput) (models.TestCase, bool, error) {
	var (
		testCase models.TestCase
		err      error
	)
	switch {
	case input.TestCaseID != "":
		testCase, err = s.testCaseRepository.FindByID(tx, input.TestCaseID)
	case input.ScenarioName != "":
		testCase, err = s.testCaseRepository.FindByScenarioName(tx, input.ScenarioName)
	default:
		return models.TestCase{}, false, nil
	}
	if err != nil {
		if shared.IsNotFound(err) {
			return models.TestCase{}, false, nil
		}
		return models.TestCase{}, false, err
	}
	return testCase, true, nil
}

// resultFromInput returns the result and the columns an existing result takes over.
// The status always applies, the optional fields only when given.
func resultFromInput(input dtos.TestResultInput, testCaseID, pipelineID string) (models.TestCasePipelineResult, []string) {
	status := input.Status
	if status == "" {
		status = models.TestResultStatusNotExecuted
	}
	result := models.TestCasePipelineResult{
		Status:     status,
		TestCaseID: testCaseID,
		PipelineID: pipelineID,
	}
	columns := []string{"status"}

	if details := utils.SafeDereference(input.Details); details != "" {
		result.Details = &details
		columns = append(columns, "details")
	}
	if logURL := utils.SafeDereference(input.LogURL); logURL != "" {
		result.LogURL = &logURL
		columns = append(columns, "log_url")
	}
	if input.Duration != nil && *input.Duration != 0 {
		result.Duration = input.Duration
		columns = append(columns, "duration")
	}
	return result, columns
}

func (s *pipelineService) notifyPipelineFailed(ctx context.Context, pipeline models.GitlabPipeline) {
	results, err := s.pipelineRepository.ListResults(pipeline.ID)
	if err != nil {
		slog.Error("could not load results for failure notification", "err", err, "pipelineID", pipeline.ID)
		return
	}
	failedCount := transformer.SummarizeResults(results).Failed

	apps, err := s.applicationRepository.ListByGitlabProjectID(pipeline.GitlabProjectID)
	if err != nil {
		slog.Error("could not resolve applications for failure notification", "err", err, "gitlabProjectID", pipeline.GitlabProjectID)
		return
	}

	groupIDs := utils.DeduplicateSlice(utils.Map(apps, func(app models.Application) string {
		return app.GroupID
	}), func(id string) string { return id })

	for _, groupID := range groupIDs {
		s.notificationService.Notify(ctx, models.NotificationTypePipelineFailed, &groupID, map[string]any{
			"pipeline": map[string]any{
				"id":               pipeline.ID,
				"gitlabProjectId":  pipeline.GitlabProjectID,
				"gitlabPipelineId": pipeline.GitlabPipelineID,
				"branch":           pipeline.Branch,
				"webUrl":           utils.SafeDereference(pipeline.WebURL),
			},
			"failedCount": failedCount,
		})
	}
}

func (s *pipelineService) SyncProject(ctx context.Context, gitlabProjectID string) (int, error) {
	client, err := s.integrationService.GitlabClient()
	if err != nil {
		return 0, shared.NewValidationError("gitlab integration is not configured", err)
	}

	pipelines, err := client.ListProjectPipelines(ctx, gitlabProjectID, pipelineSyncPageSize)
	if err != nil {
		return 0, shared.NewUnexpectedError(errors.Wrap(err, "could not list gitlab pipelines"))
	}

	synced := 0
	for _, info := range pipelines {
		executedAt := info.CreatedAt
		// synced pipelines carry no results, failures were already reported by ci
		_, err := s.register(ctx, dtos.RegisterPipelineRequest{
			GitlabProjectID:  gitlabProjectID,
			GitlabPipelineID: info.ID,
			Branch:           info.Ref,
			PipelineStatus:   info.Status,
			WebURL:           utils.EmptyThenNil(info.WebURL),
			ExecutedAt:       &executedAt,
		}, false)
		if err != nil {
			return synced, err
		}
		synced++
	}
	monitoring.PipelineSyncAmount.Add(float64(synced))
	return synced, nil
}
