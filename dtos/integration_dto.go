package dtos

import (
	"encoding/json"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
)

type IntegrationConfigDTO struct {
	ID        string                 `json:"id"`
	Type      models.IntegrationType `json:"type"`
	Config    json.RawMessage        `json:"config"`
	IsActive  bool                   `json:"isActive"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

type IntegrationConfigRequest struct {
	Config   json.RawMessage `json:"config" validate:"required"`
	IsActive *bool           `json:"isActive"`
}

// GitlabIntegrationSettings is the shape of the gitlab integration config document.
type GitlabIntegrationSettings struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

type NotificationLogDTO struct {
	ID         string                    `json:"id"`
	Type       models.NotificationType   `json:"type"`
	Recipients []string                  `json:"recipients"`
	Subject    string                    `json:"subject"`
	Body       string                    `json:"body"`
	Status     models.NotificationStatus `json:"status"`
	Error      *string                   `json:"error"`
	Metadata   map[string]any            `json:"metadata"`
	CreatedAt  time.Time                 `json:"createdAt"`
}

type NotificationLogFilter struct {
	Type   *models.NotificationType
	Status *models.NotificationStatus
}

type UploadResponse struct {
	URL string `json:"url"`
}
