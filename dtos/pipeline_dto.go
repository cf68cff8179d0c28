package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type PipelineDTO struct {
	ID               string                `json:"id"`
	GitlabProjectID  string                `json:"gitlabProjectId"`
	GitlabPipelineID string                `json:"gitlabPipelineId"`
	Branch           string                `json:"branch"`
	Status           models.PipelineStatus `json:"status"`
	WebURL           *string               `json:"webUrl"`
	ExecutedAt       time.Time             `json:"executedAt"`
	CreatedAt        time.Time             `json:"createdAt"`

	TestCaseResults []PipelineResultDTO `json:"testCaseResults,omitempty"`
	Count           Counts              `json:"_count,omitempty"`
}

type PipelineRefDTO struct {
	ID               string                `json:"id"`
	GitlabProjectID  string                `json:"gitlabProjectId"`
	GitlabPipelineID string                `json:"gitlabPipelineId"`
	Branch           string                `json:"branch"`
	Status           models.PipelineStatus `json:"status"`
	WebURL           *string               `json:"webUrl"`
	ExecutedAt       time.Time             `json:"executedAt"`
}

type PipelineResultDTO struct {
	ID         string                  `json:"id"`
	Status     models.TestResultStatus `json:"status"`
	Details    *string                 `json:"details"`
	LogURL     *string                 `json:"logUrl"`
	Duration   *int                    `json:"duration"`
	TestCaseID string                  `json:"testCaseId"`
	PipelineID string                  `json:"pipelineId"`
	CreatedAt  time.Time               `json:"createdAt"`

	TestCase *TestCaseRefDTO `json:"testCase,omitempty"`
	Pipeline *PipelineRefDTO `json:"pipeline,omitempty"`
}

type PipelineSummaryDTO struct {
	Total       int `json:"total"`
	Passed      int `json:"passed"`
	Failed      int `json:"failed"`
	Skipped     int `json:"skipped"`
	NotExecuted int `json:"notExecuted"`
}

type PipelineResultsDTO struct {
	Results []PipelineResultDTO `json:"results"`
	Summary PipelineSummaryDTO  `json:"summary"`
}

// TestResultInput identifies its test case by id or, when the id is unknown, by scenario name.
type TestResultInput struct {
	TestCaseID   string                  `json:"testCaseId"`
	ScenarioName string                  `json:"scenarioName"`
	Status       models.TestResultStatus `json:"status" validate:"omitempty,oneof=PASSED FAILED SKIPPED NOT_EXECUTED"`
	Details      *string                 `json:"details"`
	LogURL       *string                 `json:"logUrl"`
	Duration     *int                    `json:"duration" validate:"omitempty,min=0"`
}

type RegisterPipelineRequest struct {
	GitlabProjectID  string                `json:"gitlabProjectId" validate:"required"`
	GitlabPipelineID string                `json:"gitlabPipelineId" validate:"required"`
	Branch           string                `json:"branch"`
	PipelineStatus   models.PipelineStatus `json:"pipelineStatus" validate:"omitempty,oneof=PENDING RUNNING PASSED FAILED CANCELED SKIPPED"`
	WebURL           *string               `json:"webUrl"`
	ExecutedAt       *time.Time            `json:"executedAt"`
	TestResults      []TestResultInput     `json:"testResults" validate:"dive"`
}

type PipelineFilter struct {
	GitlabProjectID *string
	Status          *models.PipelineStatus
	// Branch matches as a case-insensitive substring
	Branch *string
}

type SyncPipelinesResponse struct {
	ProjectID string `json:"projectId"`
	Synced    int    `json:"synced"`
}
