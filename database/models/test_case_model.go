package models

import (
	"gorm.io/datatypes"
)

type TestCaseType string

const (
	TestCaseTypeManual    TestCaseType = "MANUAL"
	TestCaseTypeAutomated TestCaseType = "AUTOMATED"
)

func (t TestCaseType) IsValid() bool {
	switch t {
	case TestCaseTypeManual, TestCaseTypeAutomated:
		return true
	}
	return false
}

type TestCasePriority string

const (
	TestCasePriorityHigh   TestCasePriority = "HIGH"
	TestCasePriorityMedium TestCasePriority = "MEDIUM"
	TestCasePriorityLow    TestCasePriority = "LOW"
)

func (p TestCasePriority) IsValid() bool {
	switch p {
	case TestCasePriorityHigh, TestCasePriorityMedium, TestCasePriorityLow:
		return true
	}
	return false
}

type TestCaseStatus string

const (
	TestCaseStatusPlanned       TestCaseStatus = "PLANNED"
	TestCaseStatusInDevelopment TestCaseStatus = "IN_DEVELOPMENT"
	TestCaseStatusProductive    TestCaseStatus = "PRODUCTIVE"
	TestCaseStatusObsolete      TestCaseStatus = "OBSOLETE"
)

func (s TestCaseStatus) IsValid() bool {
	switch s {
	case TestCaseStatusPlanned, TestCaseStatusInDevelopment, TestCaseStatusProductive, TestCaseStatusObsolete:
		return true
	}
	return false
}

type TestCase struct {
	Model
	Name        string           `json:"name" gorm:"type:text;not null"`
	Description *string          `json:"description" gorm:"type:text"`
	Type        TestCaseType     `json:"type" gorm:"type:text;not null;default:'AUTOMATED'"`
	Priority    TestCasePriority `json:"priority" gorm:"type:text;not null;default:'MEDIUM'"`
	Status      TestCaseStatus   `json:"status" gorm:"type:text;not null;default:'PLANNED'"`
	FeatureID   string           `json:"featureId" gorm:"type:text;not null;index"`
	Feature     Feature          `json:"feature" gorm:"foreignKey:FeatureID;references:ID"`

	AzureUserStoryID  *string `json:"azureUserStoryId" gorm:"type:text"`
	AzureUserStoryURL *string `json:"azureUserStoryUrl" gorm:"type:text"`
	AzureTestCaseID   *string `json:"azureTestCaseId" gorm:"type:text"`
	AzureTestCaseURL  *string `json:"azureTestCaseUrl" gorm:"type:text"`

	Tags datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb"`
	// the scenario name is the secondary key used to match ci results
	ScenarioName *string `json:"scenarioName" gorm:"type:text;index"`

	Steps           []GherkinStep            `json:"steps,omitempty" gorm:"foreignKey:TestCaseID;references:ID;constraint:OnDelete:CASCADE;"`
	PipelineResults []TestCasePipelineResult `json:"pipelineResults,omitempty" gorm:"foreignKey:TestCaseID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (TestCase) TableName() string {
	return "test_cases"
}

type GherkinStepType string

const (
	GherkinStepTypeGiven GherkinStepType = "GIVEN"
	GherkinStepTypeWhen  GherkinStepType = "WHEN"
	GherkinStepTypeThen  GherkinStepType = "THEN"
	GherkinStepTypeAnd   GherkinStepType = "AND"
	GherkinStepTypeBut   GherkinStepType = "BUT"
)

func (t GherkinStepType) IsValid() bool {
	switch t {
	case GherkinStepTypeGiven, GherkinStepTypeWhen, GherkinStepTypeThen, GherkinStepTypeAnd, GherkinStepTypeBut:
		return true
	}
	return false
}

type GherkinStep struct {
	Model
	Type       GherkinStepType  `json:"type" gorm:"type:text;not null"`
	Text       string           `json:"text" gorm:"type:text;not null"`
	Order      int              `json:"order" gorm:"column:sort_order;not null"`
	TestCaseID string           `json:"testCaseId" gorm:"type:text;not null;index"`
	SubSteps   []GherkinSubStep `json:"subSteps" gorm:"foreignKey:StepID;references:ID;constraint:OnDelete:CASCADE;"`
}

func (GherkinStep) TableName() string {
	return "gherkin_steps"
}

type GherkinSubStep struct {
	Model
	Text   string `json:"text" gorm:"type:text;not null"`
	Order  int    `json:"order" gorm:"column:sort_order;not null"`
	StepID string `json:"stepId" gorm:"type:text;not null;index"`
}

func (GherkinSubStep) TableName() string {
	return "gherkin_sub_steps"
}
