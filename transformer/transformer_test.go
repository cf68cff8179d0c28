package transformer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestApplyTestRequestPatchRequestToModel(t *testing.T) {
	tests := []struct {
		name     string
		patch    dtos.TestRequestPatchRequest
		initial  models.TestRequest
		expected models.TestRequest
		updated  bool
	}{
		{
			name:     "Ignore empty title and description",
			patch:    dtos.TestRequestPatchRequest{Title: utils.Ptr(""), Description: utils.Ptr("")},
			initial:  models.TestRequest{Title: "Login", Description: "Check the login"},
			expected: models.TestRequest{Title: "Login", Description: "Check the login"},
			updated:  false,
		},
		{
			name:     "Update title",
			patch:    dtos.TestRequestPatchRequest{Title: utils.Ptr("Logout")},
			initial:  models.TestRequest{Title: "Login"},
			expected: models.TestRequest{Title: "Logout"},
			updated:  true,
		},
		{
			name:     "Clear assignee with empty string",
			patch:    dtos.TestRequestPatchRequest{AssigneeID: utils.Ptr("")},
			initial:  models.TestRequest{AssigneeID: utils.Ptr("user-1")},
			expected: models.TestRequest{},
			updated:  true,
		},
		{
			name:     "Set generated test case",
			patch:    dtos.TestRequestPatchRequest{GeneratedTestCaseID: utils.Ptr("tc-1")},
			initial:  models.TestRequest{},
			expected: models.TestRequest{GeneratedTestCaseID: utils.Ptr("tc-1")},
			updated:  true,
		},
		{
			name:     "Clear front plan with null",
			patch:    dtos.TestRequestPatchRequest{FrontPlan: json.RawMessage("null")},
			initial:  models.TestRequest{FrontPlan: datatypes.JSON(`{"steps":[]}`)},
			expected: models.TestRequest{},
			updated:  true,
		},
		{
			name:     "No changes",
			patch:    dtos.TestRequestPatchRequest{},
			initial:  models.TestRequest{Title: "Login"},
			expected: models.TestRequest{Title: "Login"},
			updated:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := transformer.ApplyTestRequestPatchRequestToModel(tt.patch, &tt.initial)
			assert.Equal(t, tt.updated, updated)
			assert.Equal(t, tt.expected, tt.initial)
		})
	}
}

func TestApplyTestCasePatchRequestToModel(t *testing.T) {
	tests := []struct {
		name     string
		patch    dtos.TestCasePatchRequest
		initial  models.TestCase
		expected models.TestCase
		updated  bool
	}{
		{
			name:     "Update name and status",
			patch:    dtos.TestCasePatchRequest{Name: utils.Ptr("New"), Status: utils.Ptr(models.TestCaseStatusProductive)},
			initial:  models.TestCase{Name: "Old", Status: models.TestCaseStatusPlanned},
			expected: models.TestCase{Name: "New", Status: models.TestCaseStatusProductive},
			updated:  true,
		},
		{
			name:     "Replace tags",
			patch:    dtos.TestCasePatchRequest{Tags: &[]string{"regression"}},
			initial:  models.TestCase{Tags: datatypes.JSONSlice[string]{"smoke"}},
			expected: models.TestCase{Tags: datatypes.JSONSlice[string]{"regression"}},
			updated:  true,
		},
		{
			name:     "Clear scenario name",
			patch:    dtos.TestCasePatchRequest{ScenarioName: utils.Ptr(" ")},
			initial:  models.TestCase{ScenarioName: utils.Ptr("Pay")},
			expected: models.TestCase{},
			updated:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := transformer.ApplyTestCasePatchRequestToModel(tt.patch, &tt.initial)
			assert.Equal(t, tt.updated, updated)
			assert.Equal(t, tt.expected, tt.initial)
		})
	}
}

func TestStepInputsToModels(t *testing.T) {
	t.Run("should default the order to the position in the list", func(t *testing.T) {
		steps := transformer.StepInputsToModels("tc-1", []dtos.StepInput{
			{Type: models.GherkinStepTypeGiven, Text: "a cart"},
			{Type: models.GherkinStepTypeWhen, Text: "I pay", Order: utils.Ptr(7), SubSteps: []dtos.SubStepInput{
				{Text: "enter card"},
				{Text: "confirm"},
			}},
		})

		assert.Len(t, steps, 2)
		assert.Equal(t, 1, steps[0].Order)
		assert.Equal(t, 7, steps[1].Order)
		assert.Equal(t, "tc-1", steps[1].TestCaseID)
		assert.Equal(t, 1, steps[1].SubSteps[0].Order)
		assert.Equal(t, 2, steps[1].SubSteps[1].Order)
	})
}

func TestStepsModelToDTO(t *testing.T) {
	t.Run("should sort steps and sub steps by order", func(t *testing.T) {
		result := transformer.StepsModelToDTO([]models.GherkinStep{
			{Text: "then", Order: 3},
			{Text: "given", Order: 1, SubSteps: []models.GherkinSubStep{{Text: "b", Order: 2}, {Text: "a", Order: 1}}},
		})

		assert.Equal(t, "given", result[0].Text)
		assert.Equal(t, "then", result[1].Text)
		assert.Equal(t, "a", result[0].SubSteps[0].Text)
		assert.Empty(t, result[1].SubSteps)
	})
}

func TestSummarizeResults(t *testing.T) {
	t.Run("should count each status", func(t *testing.T) {
		summary := transformer.SummarizeResults([]models.TestCasePipelineResult{
			{Status: models.TestResultStatusPassed},
			{Status: models.TestResultStatusPassed},
			{Status: models.TestResultStatusFailed},
			{Status: models.TestResultStatusNotExecuted},
		})
		assert.Equal(t, dtos.PipelineSummaryDTO{Total: 4, Passed: 2, Failed: 1, NotExecuted: 1}, summary)
	})
}

func TestAppendNote(t *testing.T) {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should start the notes with the first entry", func(t *testing.T) {
		notes := transformer.AppendNote(nil, "approved", at)
		assert.Equal(t, "[2025-03-01T10:00:00Z] approved", *notes)
	})

	t.Run("should separate entries by a blank line", func(t *testing.T) {
		notes := transformer.AppendNote(utils.Ptr("first"), "second", at)
		assert.Equal(t, "first\n\n[2025-03-01T10:00:00Z] second", *notes)
	})
}

func TestTestRequestModelToDTO(t *testing.T) {
	t.Run("should render empty json columns as null and auth users as empty list", func(t *testing.T) {
		dto := transformer.TestRequestModelToDTO(models.TestRequest{Title: "Login"})
		b, err := json.Marshal(dto)
		assert.Nil(t, err)
		assert.Contains(t, string(b), `"frontPlan":null`)
		assert.Contains(t, string(b), `"authUsers":[]`)
		assert.Contains(t, string(b), `"assignee":null`)
	})
}
