package transformer

import (
	"encoding/json"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
)

func IntegrationConfigModelToDTO(cfg models.IntegrationConfig) dtos.IntegrationConfigDTO {
	config := json.RawMessage(cfg.Config)
	if len(config) == 0 {
		config = json.RawMessage("{}")
	}
	return dtos.IntegrationConfigDTO{
		ID:        cfg.ID,
		Type:      cfg.Type,
		Config:    config,
		IsActive:  cfg.IsActive,
		CreatedAt: cfg.CreatedAt,
		UpdatedAt: cfg.UpdatedAt,
	}
}

func NotificationLogModelToDTO(log models.NotificationLog) dtos.NotificationLogDTO {
	recipients := []string(log.Recipients)
	if recipients == nil {
		recipients = []string{}
	}
	metadata := map[string]any(log.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return dtos.NotificationLogDTO{
		ID:         log.ID,
		Type:       log.Type,
		Recipients: recipients,
		Subject:    log.Subject,
		Body:       log.Body,
		Status:     log.Status,
		Error:      log.Error,
		Metadata:   metadata,
		CreatedAt:  log.CreatedAt,
	}
}
