package transformer

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
)

func GroupModelToDTO(group models.Group, counts dtos.Counts) dtos.GroupDTO {
	dto := dtos.GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
		Count:       counts,
	}
	if group.Applications != nil {
		dto.Applications = utils.Map(group.Applications, func(app models.Application) dtos.ApplicationDTO {
			return ApplicationModelToDTO(app, nil)
		})
	}
	if group.Subscriptions != nil {
		dto.Subscriptions = utils.Map(group.Subscriptions, SubscriptionModelToDTO)
	}
	return dto
}

func GroupModelToRefDTO(group models.Group) dtos.GroupRefDTO {
	dto := dtos.GroupRefDTO{
		ID:   group.ID,
		Name: group.Name,
	}
	if group.Applications != nil {
		dto.Applications = utils.Map(group.Applications, func(app models.Application) dtos.ApplicationDTO {
			return ApplicationModelToDTO(app, nil)
		})
	}
	return dto
}

func GroupCreateRequestToModel(req dtos.GroupCreateRequest) models.Group {
	return models.Group{
		Name:        req.Name,
		Description: req.Description,
	}
}

func ApplyGroupPatchRequestToModel(req dtos.GroupPatchRequest, group *models.Group) bool {
	updated := false
	if req.Name != nil {
		group.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		group.Description = req.Description
		updated = true
	}
	return updated
}
