package dtos

import (
	"encoding/json"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type TestRequestDTO struct {
	ID                  string                   `json:"id"`
	Title               string                   `json:"title"`
	Description         string                   `json:"description"`
	Status              models.TestRequestStatus `json:"status"`
	Type                models.TestRequestType   `json:"type"`
	Environment         *string                  `json:"environment"`
	HasAuth             bool                     `json:"hasAuth"`
	AuthType            *string                  `json:"authType"`
	AuthUsers           []string                 `json:"authUsers"`
	FrontPlan           json.RawMessage          `json:"frontPlan"`
	APIPlan             json.RawMessage          `json:"apiPlan"`
	ApplicationID       string                   `json:"applicationId"`
	RequesterID         string                   `json:"requesterId"`
	AssigneeID          *string                  `json:"assigneeId"`
	AzureWorkItemID     *string                  `json:"azureWorkItemId"`
	AzureWorkItemURL    *string                  `json:"azureWorkItemUrl"`
	AdditionalNotes     *string                  `json:"additionalNotes"`
	GeneratedTestCaseID *string                  `json:"generatedTestCaseId"`
	CreatedAt           time.Time                `json:"createdAt"`
	UpdatedAt           time.Time                `json:"updatedAt"`

	Application       *ApplicationRefDTO `json:"application,omitempty"`
	Requester         *UserRefDTO        `json:"requester,omitempty"`
	Assignee          *UserRefDTO        `json:"assignee"`
	GeneratedTestCase *TestCaseRefDTO    `json:"generatedTestCase"`
}

type TestRequestRefDTO struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Status      models.TestRequestStatus `json:"status"`
	CreatedAt   time.Time                `json:"createdAt"`
	Application *ApplicationRefDTO       `json:"application,omitempty"`
}

type TestRequestCreateRequest struct {
	Title            string                 `json:"title" validate:"required"`
	Description      string                 `json:"description" validate:"required"`
	Type             models.TestRequestType `json:"type" validate:"omitempty,oneof=FRONT API"`
	ApplicationID    string                 `json:"applicationId" validate:"required"`
	Environment      *string                `json:"environment"`
	HasAuth          bool                   `json:"hasAuth"`
	AuthType         *string                `json:"authType"`
	AuthUsers        []string               `json:"authUsers"`
	FrontPlan        json.RawMessage        `json:"frontPlan"`
	APIPlan          json.RawMessage        `json:"apiPlan"`
	AzureWorkItemID  *string                `json:"azureWorkItemId"`
	AzureWorkItemURL *string                `json:"azureWorkItemUrl"`
	AdditionalNotes  *string                `json:"additionalNotes"`
}

// TestRequestPatchRequest updates a request partially. Title and description only apply when
// non-empty, an empty assigneeId or generatedTestCaseId clears the reference.
type TestRequestPatchRequest struct {
	Title               *string                   `json:"title"`
	Description         *string                   `json:"description"`
	Status              *models.TestRequestStatus `json:"status" validate:"omitempty,oneof=NEW IN_ANALYSIS APPROVED REJECTED IMPLEMENTED"`
	Type                *models.TestRequestType   `json:"type" validate:"omitempty,oneof=FRONT API"`
	Environment         *string                   `json:"environment"`
	HasAuth             *bool                     `json:"hasAuth"`
	AuthType            *string                   `json:"authType"`
	AuthUsers           *[]string                 `json:"authUsers"`
	FrontPlan           json.RawMessage           `json:"frontPlan"`
	APIPlan             json.RawMessage           `json:"apiPlan"`
	AssigneeID          *string                   `json:"assigneeId"`
	AzureWorkItemID     *string                   `json:"azureWorkItemId"`
	AzureWorkItemURL    *string                   `json:"azureWorkItemUrl"`
	AdditionalNotes     *string                   `json:"additionalNotes"`
	GeneratedTestCaseID *string                   `json:"generatedTestCaseId"`
}

type TestRequestStatusRequest struct {
	Status              models.TestRequestStatus `json:"status" validate:"required,oneof=NEW IN_ANALYSIS APPROVED REJECTED IMPLEMENTED"`
	AssigneeID          string                   `json:"assigneeId"`
	GeneratedTestCaseID string                   `json:"generatedTestCaseId"`
	Notes               string                   `json:"notes"`
}

type TestRequestFilter struct {
	ApplicationID *string
	Status        *models.TestRequestStatus
	RequesterID   *string
}
