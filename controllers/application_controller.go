package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

type ApplicationController struct {
	applicationService    shared.ApplicationService
	applicationRepository shared.ApplicationRepository
	featureRepository     shared.FeatureRepository
}

func NewApplicationController(applicationService shared.ApplicationService, applicationRepository shared.ApplicationRepository, featureRepository shared.FeatureRepository) *ApplicationController {
	return &ApplicationController{
		applicationService:    applicationService,
		applicationRepository: applicationRepository,
		featureRepository:     featureRepository,
	}
}

func (c *ApplicationController) List(ctx shared.Context) error {
	status, err := enumQuery[models.ApplicationStatus](ctx, "status")
	if err != nil {
		return err
	}

	paged, err := c.applicationRepository.ListPaged(shared.GetPageInfo(ctx), shared.GetSearch(ctx), dtos.ApplicationFilter{
		GroupID: shared.GetOptionalQuery(ctx, "groupId"),
		Status:  status,
	})
	if err != nil {
		return shared.NewStorageError(err)
	}

	counts, err := c.applicationRepository.Counts(utils.Map(paged.Data, func(a models.Application) string { return a.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	return shared.PagedResponse(ctx, paged.Map(func(app models.Application) any {
		return transformer.ApplicationModelToDTO(app, counts[app.ID])
	}))
}

func (c *ApplicationController) Read(ctx shared.Context) error {
	app, err := c.applicationRepository.ReadWithDetails(shared.GetParam(ctx, "id"))
	if err != nil {
		return shared.StorageErrorOr(err, "application not found")
	}

	counts, err := c.featureRepository.Counts(utils.Map(app.Features, func(f models.Feature) string { return f.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	dto := transformer.ApplicationModelToDTO(app, nil)
	for i := range dto.Features {
		dto.Features[i].Count = counts[dto.Features[i].ID]
	}
	return shared.OK(ctx, dto)
}

func (c *ApplicationController) Create(ctx shared.Context) error {
	var req dtos.ApplicationCreateRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	app, err := c.applicationService.Create(req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.applicationRepository.Counts, app.ID)
	if err != nil {
		return err
	}
	return shared.Created(ctx, transformer.ApplicationModelToDTO(app, counts))
}

func (c *ApplicationController) Update(ctx shared.Context) error {
	var req dtos.ApplicationPatchRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	app, err := c.applicationService.Update(shared.GetParam(ctx, "id"), req)
	if err != nil {
		return err
	}
	counts, err := countsOf(c.applicationRepository.Counts, app.ID)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.ApplicationModelToDTO(app, counts))
}

func (c *ApplicationController) Delete(ctx shared.Context) error {
	if err := c.applicationService.Delete(shared.GetParam(ctx, "id")); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "application deleted")
}

func (c *ApplicationController) Features(ctx shared.Context) error {
	id := shared.GetParam(ctx, "id")
	status, err := enumQuery[models.FeatureStatus](ctx, "status")
	if err != nil {
		return err
	}
	if _, err := c.applicationRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "application not found")
	}

	features, err := c.featureRepository.ListByApplication(id, status)
	if err != nil {
		return shared.NewStorageError(err)
	}
	counts, err := c.featureRepository.Counts(utils.Map(features, func(f models.Feature) string { return f.ID }))
	if err != nil {
		return shared.NewStorageError(err)
	}

	return shared.OK(ctx, utils.Map(features, func(f models.Feature) dtos.FeatureDTO {
		return transformer.FeatureModelToDTO(f, counts[f.ID])
	}))
}

func (c *ApplicationController) Stats(ctx shared.Context) error {
	stats, err := c.applicationService.Stats(shared.GetParam(ctx, "id"))
	if err != nil {
		return err
	}
	return shared.OK(ctx, stats)
}
