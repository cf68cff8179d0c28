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

package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type TestCaseDTO struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Description       *string                 `json:"description"`
	Type              models.TestCaseType     `json:"type"`
	Priority          models.TestCasePriority `json:"priority"`
	Status            models.TestCaseStatus   `json:"status"`
	FeatureID         string                  `json:"featureId"`
	AzureUserStoryID  *string                 `json:"azureUserStoryId"`
	AzureUserStoryURL *string                 `json:"azureUserStoryUrl"`
	AzureTestCaseID   *string                 `json:"azureTestCaseId"`
	AzureTestCaseURL  *string                 `json:"azureTestCaseUrl"`
	Tags              []string                `json:"tags"`
	ScenarioName      *string                 `json:"scenarioName"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`

	Feature         *FeatureRefDTO      `json:"feature,omitempty"`
	Steps           []GherkinStepDTO    `json:"steps,omitempty"`
	PipelineResults []PipelineResultDTO `json:"pipelineResults,omitempty"`
	Count           Counts              `json:"_count,omitempty"`
}

type TestCaseRefDTO struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Status       models.TestCaseStatus `json:"status,omitempty"`
	ScenarioName *string               `json:"scenarioName,omitempty"`
	Feature      *FeatureRefDTO        `json:"feature,omitempty"`
	Count        Counts                `json:"_count,omitempty"`
}

type GherkinStepDTO struct {
	ID       string                 `json:"id"`
	Type     models.GherkinStepType `json:"type"`
	Text     string                 `json:"text"`
	Order    int                    `json:"order"`
	SubSteps []GherkinSubStepDTO    `json:"subSteps"`
}

type GherkinSubStepDTO struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// StepInput is one step of a step replacement. A missing order defaults to the 1-based position.
type StepInput struct {
	Type     models.GherkinStepType `json:"type" validate:"required,oneof=GIVEN WHEN THEN AND BUT"`
	Text     string                 `json:"text" validate:"required"`
	Order    *int                   `json:"order"`
	SubSteps []SubStepInput         `json:"subSteps" validate:"dive"`
}

type SubStepInput struct {
	Text  string `json:"text" validate:"required"`
	Order *int   `json:"order"`
}

type UpdateStepsRequest struct {
	Steps []StepInput `json:"steps" validate:"dive"`
}

type TestCaseCreateRequest struct {
	Name              string                  `json:"name" validate:"required"`
	Description       *string                 `json:"description"`
	Type              models.TestCaseType     `json:"type" validate:"omitempty,oneof=MANUAL AUTOMATED"`
	Priority          models.TestCasePriority `json:"priority" validate:"omitempty,oneof=HIGH MEDIUM LOW"`
	Status            models.TestCaseStatus   `json:"status" validate:"omitempty,oneof=PLANNED IN_DEVELOPMENT PRODUCTIVE OBSOLETE"`
	FeatureID         string                  `json:"featureId" validate:"required"`
	AzureUserStoryID  *string                 `json:"azureUserStoryId"`
	AzureUserStoryURL *string                 `json:"azureUserStoryUrl"`
	AzureTestCaseID   *string                 `json:"azureTestCaseId"`
	AzureTestCaseURL  *string                 `json:"azureTestCaseUrl"`
	Tags              []string                `json:"tags"`
	ScenarioName      *string                 `json:"scenarioName"`
	Steps             []StepInput             `json:"steps" validate:"dive"`
}

type TestCasePatchRequest struct {
	Name              *string                  `json:"name" validate:"omitempty,min=1"`
	Description       *string                  `json:"description"`
	Type              *models.TestCaseType     `json:"type" validate:"omitempty,oneof=MANUAL AUTOMATED"`
	Priority          *models.TestCasePriority `json:"priority" validate:"omitempty,oneof=HIGH MEDIUM LOW"`
	Status            *models.TestCaseStatus   `json:"status" validate:"omitempty,oneof=PLANNED IN_DEVELOPMENT PRODUCTIVE OBSOLETE"`
	FeatureID         *string                  `json:"featureId" validate:"omitempty,min=1"`
	AzureUserStoryID  *string                  `json:"azureUserStoryId"`
	AzureUserStoryURL *string                  `json:"azureUserStoryUrl"`
	AzureTestCaseID   *string                  `json:"azureTestCaseId"`
	AzureTestCaseURL  *string                  `json:"azureTestCaseUrl"`
	Tags              *[]string                `json:"tags"`
	ScenarioName      *string                  `json:"scenarioName"`
}

type TestCaseFilter struct {
	FeatureID     *string
	ApplicationID *string
	GroupID       *string
	Status        *models.TestCaseStatus
	Type          *models.TestCaseType
	Priority      *models.TestCasePriority
}
