package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func FeatureModelToDTO(feature models.Feature, counts dtos.Counts) dtos.FeatureDTO {
	dto := dtos.FeatureDTO{
		ID:              feature.ID,
		Name:            feature.Name,
		Description:     feature.Description,
		FeatureFilePath: feature.FeatureFilePath,
		Status:          feature.Status,
		ApplicationID:   feature.ApplicationID,
		CreatedAt:       feature.CreatedAt,
		UpdatedAt:       feature.UpdatedAt,
		Count:           counts,
	}
	if feature.Application.ID != "" {
		dto.Application = utils.Ptr(ApplicationModelToRefDTO(feature.Application))
	}
	if feature.TestCases != nil {
		dto.TestCases = utils.Map(feature.TestCases, func(tc models.TestCase) dtos.TestCaseDTO {
			return TestCaseModelToDTO(tc, nil)
		})
	}
	return dto
}

func FeatureModelToRefDTO(feature models.Feature) dtos.FeatureRefDTO {
	dto := dtos.FeatureRefDTO{
		ID:   feature.ID,
		Name: feature.Name,
	}
	if feature.Application.ID != "" {
		dto.Application = utils.Ptr(ApplicationModelToRefDTO(feature.Application))
	}
	return dto
}

func FeatureCreateRequestToModel(req dtos.FeatureCreateRequest) models.Feature {
	status := req.Status
	if status == "" {
		status = models.FeatureStatusPlanned
	}
	return models.Feature{
		Name:            req.Name,
		Description:     req.Description,
		FeatureFilePath: req.FeatureFilePath,
		Status:          status,
		ApplicationID:   req.ApplicationID,
	}
}

func ApplyFeaturePatchRequestToModel(req dtos.FeaturePatchRequest, feature *models.Feature) bool {
	updated := false
	if req.Name != nil {
		feature.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		feature.Description = req.Description
		updated = true
	}
	if req.FeatureFilePath != nil {
		feature.FeatureFilePath = utils.EmptyThenNil(*req.FeatureFilePath)
		updated = true
	}
	if req.Status != nil {
		feature.Status = *req.Status
		updated = true
	}
	return updated
}
