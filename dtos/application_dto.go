package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type ApplicationDTO struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Description      *string                  `json:"description"`
	Status           models.ApplicationStatus `json:"status"`
	GroupID          string                   `json:"groupId"`
	GitlabProjectID  *string                  `json:"gitlabProjectId"`
	GitlabProjectURL *string                  `json:"gitlabProjectUrl"`
	AssetID          *string                  `json:"assetId"`
	BappID           *string                  `json:"bappId"`
	AvailabilityURL  *string                  `json:"availabilityUrl"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`

	Group    *GroupRefDTO `json:"group,omitempty"`
	Features []FeatureDTO `json:"features,omitempty"`
	Count    Counts       `json:"_count,omitempty"`
}

type ApplicationRefDTO struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Group *GroupRefDTO `json:"group,omitempty"`
}

type ApplicationCreateRequest struct {
	Name             string                   `json:"name" validate:"required"`
	Description      *string                  `json:"description"`
	Status           models.ApplicationStatus `json:"status" validate:"omitempty,oneof=ACTIVE DISCONTINUED"`
	GroupID          string                   `json:"groupId" validate:"required"`
	GitlabProjectID  *string                  `json:"gitlabProjectId"`
	GitlabProjectURL *string                  `json:"gitlabProjectUrl" validate:"omitempty,url"`
	AssetID          *string                  `json:"assetId"`
	BappID           *string                  `json:"bappId"`
	AvailabilityURL  *string                  `json:"availabilityUrl" validate:"omitempty,url"`
}

type ApplicationPatchRequest struct {
	Name             *string                   `json:"name" validate:"omitempty,min=1"`
	Description      *string                   `json:"description"`
	Status           *models.ApplicationStatus `json:"status" validate:"omitempty,oneof=ACTIVE DISCONTINUED"`
	GroupID          *string                   `json:"groupId" validate:"omitempty,min=1"`
	GitlabProjectID  *string                   `json:"gitlabProjectId"`
	GitlabProjectURL *string                   `json:"gitlabProjectUrl"`
	AssetID          *string                   `json:"assetId"`
	BappID           *string                   `json:"bappId"`
	AvailabilityURL  *string                   `json:"availabilityUrl"`
}

type ApplicationFilter struct {
	GroupID *string
	Status  *models.ApplicationStatus
}

type ApplicationStatsDTO struct {
	Features  []StatusCount `json:"features"`
	TestCases []StatusCount `json:"testCases"`
	Requests  []StatusCount `json:"requests"`
}
