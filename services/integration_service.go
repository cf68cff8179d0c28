package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"gorm.io/datatypes"
)

var ErrGitlabNotConfigured = fmt.Errorf("no active gitlab integration")

type integrationService struct {
	integrationConfigRepository shared.IntegrationConfigRepository
	broker                      shared.ClusterBroker
	gitlabClientFactory         shared.GitlabClientFactory
	fallback                    config.GitlabConfig

	mu           sync.Mutex
	gitlabClient shared.GitlabClientFacade
}

func NewIntegrationService(integrationConfigRepository shared.IntegrationConfigRepository, broker shared.ClusterBroker, gitlabClientFactory shared.GitlabClientFactory, cfg config.Config) *integrationService {
	return &integrationService{
		integrationConfigRepository: integrationConfigRepository,
		broker:                      broker,
		gitlabClientFactory:         gitlabClientFactory,
		fallback:                    cfg.Gitlab,
	}
}

func (s *integrationService) Upsert(ctx context.Context, integrationType models.IntegrationType, req dtos.IntegrationConfigRequest) (models.IntegrationConfig, error) {
	if !integrationType.IsValid() {
		return models.IntegrationConfig{}, shared.NewValidationError("unknown integration type", nil)
	}
	trimmed := bytes.TrimSpace(req.Config)
	if !json.Valid(trimmed) || len(trimmed) == 0 || trimmed[0] != '{' {
		return models.IntegrationConfig{}, shared.NewValidationError("config must be a json object", nil)
	}

	isActive := true
	if existing, err := s.integrationConfigRepository.FindByType(integrationType); err == nil {
		isActive = existing.IsActive
	} else if !shared.IsNotFound(err) {
		return models.IntegrationConfig{}, shared.NewStorageError(err)
	}
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	cfg := models.IntegrationConfig{
		Type:     integrationType,
		Config:   datatypes.JSON(trimmed),
		IsActive: isActive,
	}
	if err := s.integrationConfigRepository.UpsertByType(&cfg); err != nil {
		return models.IntegrationConfig{}, shared.NewStorageError(err)
	}

	s.announceChange(ctx, integrationType)
	return cfg, nil
}

func (s *integrationService) Delete(ctx context.Context, integrationType models.IntegrationType) error {
	if err := s.integrationConfigRepository.DeleteByType(integrationType); err != nil {
		return shared.StorageErrorOr(err, "integration not found")
	}
	s.announceChange(ctx, integrationType)
	return nil
}

func (s *integrationService) announceChange(ctx context.Context, integrationType models.IntegrationType) {
	s.invalidate()
	// other instances drop their cached clients as well
	err := s.broker.Publish(ctx, shared.NewSimplePubSubMessage(shared.IntegrationChange, map[string]any{
		"type": string(integrationType),
	}))
	if err != nil {
		slog.Warn("could not publish integration change", "err", err, "type", integrationType)
	}
}

func (s *integrationService) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gitlabClient = nil
}

// ListenForChanges drops the cached clients whenever any instance writes an integration config.
func (s *integrationService) ListenForChanges(ctx context.Context) error {
	changes, err := s.broker.Subscribe(shared.IntegrationChange)
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-changes:
				if !ok {
					return
				}
				slog.Debug("integration config changed", "type", payload["type"])
				s.invalidate()
			}
		}
	}()
	return nil
}

func (s *integrationService) gitlabSettings() (dtos.GitlabIntegrationSettings, error) {
	cfg, err := s.integrationConfigRepository.FindByType(models.IntegrationTypeGitlab)
	if err == nil && cfg.IsActive {
		var settings dtos.GitlabIntegrationSettings
		if err := json.Unmarshal(cfg.Config, &settings); err != nil {
			return dtos.GitlabIntegrationSettings{}, fmt.Errorf("invalid gitlab integration config: %w", err)
		}
		if settings.Token != "" {
			return settings, nil
		}
	} else if err != nil && !shared.IsNotFound(err) {
		return dtos.GitlabIntegrationSettings{}, err
	}

	if s.fallback.Token != "" {
		return dtos.GitlabIntegrationSettings{URL: s.fallback.URL, Token: s.fallback.Token}, nil
	}
	return dtos.GitlabIntegrationSettings{}, ErrGitlabNotConfigured
}

func (s *integrationService) GitlabClient() (shared.GitlabClientFacade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gitlabClient != nil {
		return s.gitlabClient, nil
	}

	settings, err := s.gitlabSettings()
	if err != nil {
		return nil, err
	}
	client, err := s.gitlabClientFactory.FromAccessToken(settings.Token, settings.URL)
	if err != nil {
		return nil, err
	}
	s.gitlabClient = client
	return client, nil
}
