package controllers

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

type IntegrationController struct {
	integrationService          shared.IntegrationService
	integrationConfigRepository shared.IntegrationConfigRepository
	notificationLogRepository   shared.NotificationLogRepository
}

func NewIntegrationController(integrationService shared.IntegrationService, integrationConfigRepository shared.IntegrationConfigRepository, notificationLogRepository shared.NotificationLogRepository) *IntegrationController {
	return &IntegrationController{
		integrationService:          integrationService,
		integrationConfigRepository: integrationConfigRepository,
		notificationLogRepository:   notificationLogRepository,
	}
}

func (c *IntegrationController) List(ctx shared.Context) error {
	configs, err := c.integrationConfigRepository.All()
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.OK(ctx, utils.Map(configs, transformer.IntegrationConfigModelToDTO))
}

func (c *IntegrationController) Read(ctx shared.Context) error {
	integrationType, err := enumParam[models.IntegrationType](ctx, "type")
	if err != nil {
		return err
	}

	cfg, err := c.integrationConfigRepository.FindByType(integrationType)
	if err != nil {
		return shared.StorageErrorOr(err, "integration not configured")
	}
	return shared.OK(ctx, transformer.IntegrationConfigModelToDTO(cfg))
}

func (c *IntegrationController) Upsert(ctx shared.Context) error {
	integrationType, err := enumParam[models.IntegrationType](ctx, "type")
	if err != nil {
		return err
	}

	var req dtos.IntegrationConfigRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cfg, err := c.integrationService.Upsert(ctx.Request().Context(), integrationType, req)
	if err != nil {
		return err
	}
	return shared.OK(ctx, transformer.IntegrationConfigModelToDTO(cfg))
}

func (c *IntegrationController) Delete(ctx shared.Context) error {
	integrationType, err := enumParam[models.IntegrationType](ctx, "type")
	if err != nil {
		return err
	}

	if err := c.integrationService.Delete(ctx.Request().Context(), integrationType); err != nil {
		return err
	}
	return shared.SuccessMessage(ctx, "integration deleted")
}

func (c *IntegrationController) Notifications(ctx shared.Context) error {
	var notificationType *models.NotificationType
	if t := shared.GetOptionalQuery(ctx, "type"); t != nil {
		notificationType = utils.Ptr(models.NotificationType(*t))
	}
	status, err := enumQuery[models.NotificationStatus](ctx, "status")
	if err != nil {
		return err
	}

	paged, err := c.notificationLogRepository.ListPaged(shared.GetPageInfo(ctx), dtos.NotificationLogFilter{
		Type:   notificationType,
		Status: status,
	})
	if err != nil {
		return shared.NewStorageError(err)
	}
	return shared.PagedResponse(ctx, paged.Map(func(log models.NotificationLog) any {
		return transformer.NotificationLogModelToDTO(log)
	}))
}
