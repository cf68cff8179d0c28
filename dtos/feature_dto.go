package dtos

import (
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type FeatureDTO struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Description     *string              `json:"description"`
	FeatureFilePath *string              `json:"featureFilePath"`
	Status          models.FeatureStatus `json:"status"`
	ApplicationID   string               `json:"applicationId"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`

	Application *ApplicationRefDTO `json:"application,omitempty"`
	TestCases   []TestCaseDTO      `json:"testCases,omitempty"`
	Count       Counts             `json:"_count,omitempty"`
}

type FeatureRefDTO struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Application *ApplicationRefDTO `json:"application,omitempty"`
}

type FeatureCreateRequest struct {
	Name            string               `json:"name" validate:"required"`
	Description     *string              `json:"description"`
	FeatureFilePath *string              `json:"featureFilePath"`
	Status          models.FeatureStatus `json:"status" validate:"omitempty,oneof=PLANNED IN_DEVELOPMENT PRODUCTIVE"`
	ApplicationID   string               `json:"applicationId" validate:"required"`
}

type FeaturePatchRequest struct {
	Name            *string               `json:"name" validate:"omitempty,min=1"`
	Description     *string               `json:"description"`
	FeatureFilePath *string               `json:"featureFilePath"`
	Status          *models.FeatureStatus `json:"status" validate:"omitempty,oneof=PLANNED IN_DEVELOPMENT PRODUCTIVE"`
}

type FeatureFilter struct {
	ApplicationID *string
	Status        *models.FeatureStatus
}
