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

package transformer

import (
	"slices"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
	"gorm.io/datatypes"
)

func TestCaseModelToDTO(tc models.TestCase, counts dtos.Counts) dtos.TestCaseDTO {
	tags := []string(tc.Tags)
	if tags == nil {
		tags = []string{}
	}
	dto := dtos.TestCaseDTO{
		ID:                tc.ID,
		Name:              tc.Name,
		Description:       tc.Description,
		Type:              tc.Type,
		Priority:          tc.Priority,
		Status:            tc.Status,
		FeatureID:         tc.FeatureID,
		AzureUserStoryID:  tc.AzureUserStoryID,
		AzureUserStoryURL: tc.AzureUserStoryURL,
		AzureTestCaseID:   tc.AzureTestCaseID,
		AzureTestCaseURL:  tc.AzureTestCaseURL,
		Tags:              tags,
		ScenarioName:      tc.ScenarioName,
		CreatedAt:         tc.CreatedAt,
		UpdatedAt:         tc.UpdatedAt,
		Count:             counts,
	}
	if tc.Feature.ID != "" {
		dto.Feature = utils.Ptr(FeatureModelToRefDTO(tc.Feature))
	}
	if tc.Steps != nil {
		dto.Steps = StepsModelToDTO(tc.Steps)
	}
	if tc.PipelineResults != nil {
		dto.PipelineResults = utils.Map(tc.PipelineResults, PipelineResultModelToDTO)
	}
	return dto
}

func TestCaseModelToRefDTO(tc models.TestCase) dtos.TestCaseRefDTO {
	dto := dtos.TestCaseRefDTO{
		ID:           tc.ID,
		Name:         tc.Name,
		Status:       tc.Status,
		ScenarioName: tc.ScenarioName,
	}
	if tc.Feature.ID != "" {
		dto.Feature = utils.Ptr(FeatureModelToRefDTO(tc.Feature))
	}
	return dto
}

// StepsModelToDTO returns the steps and their sub steps sorted by their order.
func StepsModelToDTO(steps []models.GherkinStep) []dtos.GherkinStepDTO {
	sorted := slices.Clone(steps)
	slices.SortStableFunc(sorted, func(a, b models.GherkinStep) int {
		return a.Order - b.Order
	})

	result := make([]dtos.GherkinStepDTO, 0, len(sorted))
	for _, step := range sorted {
		subSteps := slices.Clone(step.SubSteps)
		slices.SortStableFunc(subSteps, func(a, b models.GherkinSubStep) int {
			return a.Order - b.Order
		})
		result = append(result, dtos.GherkinStepDTO{
			ID:    step.ID,
			Type:  step.Type,
			Text:  step.Text,
			Order: step.Order,
			SubSteps: utils.Map(subSteps, func(s models.GherkinSubStep) dtos.GherkinSubStepDTO {
				return dtos.GherkinSubStepDTO{ID: s.ID, Text: s.Text, Order: s.Order}
			}),
		})
	}
	return result
}

// StepInputsToModels converts the submitted steps. A missing order defaults to the
// 1-based position in the submitted list, for steps and sub steps alike.
func StepInputsToModels(testCaseID string, inputs []dtos.StepInput) []models.GherkinStep {
	steps := make([]models.GherkinStep, 0, len(inputs))
	for i, input := range inputs {
		subSteps := make([]models.GherkinSubStep, 0, len(input.SubSteps))
		for j, sub := range input.SubSteps {
			subSteps = append(subSteps, models.GherkinSubStep{
				Text:  sub.Text,
				Order: utils.OrDefault(sub.Order, j+1),
			})
		}
		steps = append(steps, models.GherkinStep{
			Type:       input.Type,
			Text:       input.Text,
			Order:      utils.OrDefault(input.Order, i+1),
			TestCaseID: testCaseID,
			SubSteps:   subSteps,
		})
	}
	return steps
}

func TestCaseCreateRequestToModel(req dtos.TestCaseCreateRequest) models.TestCase {
	tc := models.TestCase{
		Name:              req.Name,
		Description:       req.Description,
		Type:              req.Type,
		Priority:          req.Priority,
		Status:            req.Status,
		FeatureID:         req.FeatureID,
		AzureUserStoryID:  req.AzureUserStoryID,
		AzureUserStoryURL: req.AzureUserStoryURL,
		AzureTestCaseID:   req.AzureTestCaseID,
		AzureTestCaseURL:  req.AzureTestCaseURL,
		Tags:              datatypes.JSONSlice[string](req.Tags),
		ScenarioName:      utils.EmptyThenNil(utils.SafeDereference(req.ScenarioName)),
	}
	if tc.Type == "" {
		tc.Type = models.TestCaseTypeAutomated
	}
	if tc.Priority == "" {
		tc.Priority = models.TestCasePriorityMedium
	}
	if tc.Status == "" {
		tc.Status = models.TestCaseStatusPlanned
	}
	if tc.Tags == nil {
		tc.Tags = datatypes.JSONSlice[string]{}
	}
	return tc
}

func ApplyTestCasePatchRequestToModel(req dtos.TestCasePatchRequest, tc *models.TestCase) bool {
	updated := false
	if req.Name != nil {
		tc.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		tc.Description = req.Description
		updated = true
	}
	if req.Type != nil {
		tc.Type = *req.Type
		updated = true
	}
	if req.Priority != nil {
		tc.Priority = *req.Priority
		updated = true
	}
	if req.Status != nil {
		tc.Status = *req.Status
		updated = true
	}
	if req.FeatureID != nil {
		tc.FeatureID = *req.FeatureID
		updated = true
	}
	if req.AzureUserStoryID != nil {
		tc.AzureUserStoryID = utils.EmptyThenNil(*req.AzureUserStoryID)
		updated = true
	}
	if req.AzureUserStoryURL != nil {
		tc.AzureUserStoryURL = utils.EmptyThenNil(*req.AzureUserStoryURL)
		updated = true
	}
	if req.AzureTestCaseID != nil {
		tc.AzureTestCaseID = utils.EmptyThenNil(*req.AzureTestCaseID)
		updated = true
	}
	if req.AzureTestCaseURL != nil {
		tc.AzureTestCaseURL = utils.EmptyThenNil(*req.AzureTestCaseURL)
		updated = true
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		tc.Tags = datatypes.JSONSlice[string](tags)
		updated = true
	}
	if req.ScenarioName != nil {
		tc.ScenarioName = utils.EmptyThenNil(*req.ScenarioName)
		updated = true
	}
	return updated
}
