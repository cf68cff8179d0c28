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

package models

import "time"

type PipelineStatus string

const (
	PipelineStatusPending  PipelineStatus = "PENDING"
	PipelineStatusRunning  PipelineStatus = "RUNNING"
	PipelineStatusPassed   PipelineStatus = "PASSED"
	PipelineStatusFailed   PipelineStatus = "FAILED"
	PipelineStatusCanceled PipelineStatus = "CANCELED"
	PipelineStatusSkipped  PipelineStatus = "SKIPPED"
)

func (s PipelineStatus) IsValid() bool {
	switch s {
	case PipelineStatusPending, PipelineStatusRunning, PipelineStatusPassed, PipelineStatusFailed, PipelineStatusCanceled, PipelineStatusSkipped:
		return true
	}
	return false
}

type TestResultStatus string

const (
	TestResultStatusPassed      TestResultStatus = "PASSED"
	TestResultStatusFailed      TestResultStatus = "FAILED"
	TestResultStatusSkipped     TestResultStatus = "SKIPPED"
	TestResultStatusNotExecuted TestResultStatus = "NOT_EXECUTED"
)

func (s TestResultStatus) IsValid() bool {
	switch s {
	case TestResultStatusPassed, TestResultStatusFailed, TestResultStatusSkipped, TestResultStatusNotExecuted:
		return true
	}
	return false
}

type GitlabPipeline struct {
	AppendOnlyModel
	GitlabProjectID  string                   `json:"gitlabProjectId" gorm:"type:text;not null;uniqueIndex:idx_pipeline_project_pipeline"`
	GitlabPipelineID string                   `json:"gitlabPipelineId" gorm:"type:text;not null;uniqueIndex:idx_pipeline_project_pipeline"`
	Branch           string                   `json:"branch" gorm:"type:text;not null"`
	Status           PipelineStatus           `json:"status" gorm:"type:text;not null"`
	WebURL           *string                  `json:"webUrl" gorm:"type:text"`
	ExecutedAt       time.Time                `json:"executedAt" gorm:"not null;index"`
	TestCaseResults  []TestCasePipelineResult `json:"testCaseResults,omitempty" gorm:"foreignKey:PipelineID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (GitlabPipeline) TableName() string {
	return "gitlab_pipelines"
}

type TestCasePipelineResult struct {
	AppendOnlyModel
	Status     TestResultStatus `json:"status" gorm:"type:text;not null"`
	Details    *string          `json:"details" gorm:"type:text"`
	LogURL     *string          `json:"logUrl" gorm:"type:text"`
	Duration   *int             `json:"duration"` // seconds
	TestCaseID string           `json:"testCaseId" gorm:"type:text;not null;uniqueIndex:idx_result_test_case_pipeline"`
	PipelineID string           `json:"pipelineId" gorm:"type:text;not null;uniqueIndex:idx_result_test_case_pipeline;index"`
	TestCase   TestCase         `json:"testCase" gorm:"foreignKey:TestCaseID;references:ID"`
	Pipeline   GitlabPipeline   `json:"pipeline" gorm:"foreignKey:PipelineID;references:ID"`
}

func (TestCasePipelineResult) TableName() string {
	return "test_case_pipeline_results"
}
