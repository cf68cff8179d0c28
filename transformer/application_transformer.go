package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func ApplicationModelToDTO(app models.Application, counts dtos.Counts) dtos.ApplicationDTO {
	dto := dtos.ApplicationDTO{
		ID:               app.ID,
		Name:             app.Name,
		Description:      app.Description,
		Status:           app.Status,
		GroupID:          app.GroupID,
		GitlabProjectID:  app.GitlabProjectID,
		GitlabProjectURL: app.GitlabProjectURL,
		AssetID:          app.AssetID,
		BappID:           app.BappID,
		AvailabilityURL:  app.AvailabilityURL,
		CreatedAt:        app.CreatedAt,
		UpdatedAt:        app.UpdatedAt,
		Count:            counts,
	}
	if app.Group.ID != "" {
		dto.Group = &dtos.GroupRefDTO{
			ID:          app.Group.ID,
			Name:        app.Group.Name,
			Description: app.Group.Description,
		}
	}
	if app.Features != nil {
		dto.Features = utils.Map(app.Features, func(feature models.Feature) dtos.FeatureDTO {
			return FeatureModelToDTO(feature, nil)
		})
	}
	return dto
}

func ApplicationModelToRefDTO(app models.Application) dtos.ApplicationRefDTO {
	dto := dtos.ApplicationRefDTO{
		ID:   app.ID,
		Name: app.Name,
	}
	if app.Group.ID != "" {
		dto.Group = &dtos.GroupRefDTO{ID: app.Group.ID, Name: app.Group.Name}
	}
	return dto
}

func ApplicationCreateRequestToModel(req dtos.ApplicationCreateRequest) models.Application {
	status := req.Status
	if status == "" {
		status = models.ApplicationStatusActive
	}
	return models.Application{
		Name:             req.Name,
		Description:      req.Description,
		Status:           status,
		GroupID:          req.GroupID,
		GitlabProjectID:  utils.EmptyThenNil(utils.SafeDereference(req.GitlabProjectID)),
		GitlabProjectURL: req.GitlabProjectURL,
		AssetID:          req.AssetID,
		BappID:           req.BappID,
		AvailabilityURL:  req.AvailabilityURL,
	}
}

func ApplyApplicationPatchRequestToModel(req dtos.ApplicationPatchRequest, app *models.Application) bool {
	updated := false
	if req.Name != nil {
		app.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		app.Description = req.Description
		updated = true
	}
	if req.Status != nil {
		app.Status = *req.Status
		updated = true
	}
	if req.GroupID != nil {
		app.GroupID = *req.GroupID
		updated = true
	}
	if req.GitlabProjectID != nil {
		app.GitlabProjectID = utils.EmptyThenNil(*req.GitlabProjectID)
		updated = true
	}
	if req.GitlabProjectURL != nil {
		app.GitlabProjectURL = utils.EmptyThenNil(*req.GitlabProjectURL)
		updated = true
	}
	if req.AssetID != nil {
		app.AssetID = utils.EmptyThenNil(*req.AssetID)
		updated = true
	}
	if req.BappID != nil {
		app.BappID = utils.EmptyThenNil(*req.BappID)
		updated = true
	}
	if req.AvailabilityURL != nil {
		app.AvailabilityURL = utils.EmptyThenNil(*req.AvailabilityURL)
		updated = true
	}
	return updated
}
