package models

import (
	"gorm.io/datatypes"
)

type IntegrationType string

const (
	IntegrationTypeGitlab      IntegrationType = "gitlab"
	IntegrationTypeAzureDevOps IntegrationType = "azure_devops"
)

func (t IntegrationType) IsValid() bool {
	switch t {
	case IntegrationTypeGitlab, IntegrationTypeAzureDevOps:
		return true
	}
	return false
}

type IntegrationConfig struct {
	Model
	Type     IntegrationType `json:"type" gorm:"type:text;uniqueIndex;not null"`
	Config   datatypes.JSON  `json:"config" gorm:"type:jsonb;not null"`
	IsActive bool            `json:"isActive" gorm:"not null"`
}

func (IntegrationConfig) TableName() string {
	return "integration_configs"
}
