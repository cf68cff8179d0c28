package services

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type featureService struct {
	featureRepository     shared.FeatureRepository
	applicationRepository shared.ApplicationRepository
}

func NewFeatureService(featureRepository shared.FeatureRepository, applicationRepository shared.ApplicationRepository) *featureService {
	return &featureService{
		featureRepository:     featureRepository,
		applicationRepository: applicationRepository,
	}
}

func (s *featureService) ensureNameAvailable(name, applicationID, ownID string) error {
	existing, err := s.featureRepository.FindByNameInApplication(name, applicationID)
	if err == nil && existing.ID != ownID {
		return shared.NewConflictError("a feature with this name already exists in the application", nil)
	}
	if err != nil && !shared.IsNotFound(err) {
		return shared.NewStorageError(err)
	}
	return nil
}

func (s *featureService) Create(req dtos.FeatureCreateRequest) (models.Feature, error) {
	if _, err := s.applicationRepository.Read(req.ApplicationID); err != nil {
		return models.Feature{}, shared.StorageErrorOr(err, "application not found")
	}
	if err := s.ensureNameAvailable(req.Name, req.ApplicationID, ""); err != nil {
		return models.Feature{}, err
	}

	feature := transformer.FeatureCreateRequestToModel(req)
	if err := s.featureRepository.Create(nil, &feature); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.Feature{}, shared.NewConflictError("a feature with this name already exists in the application", err)
		}
		return models.Feature{}, shared.NewStorageError(err)
	}

	created, err := s.featureRepository.ReadWithApplication(feature.ID)
	if err != nil {
		return models.Feature{}, shared.NewStorageError(err)
	}
	return created, nil
}

func (s *featureService) Update(id string, req dtos.FeaturePatchRequest) (models.Feature, error) {
	feature, err := s.featureRepository.Read(id)
	if err != nil {
		return models.Feature{}, shared.StorageErrorOr(err, "feature not found")
	}

	if req.Name != nil && *req.Name != feature.Name {
		if err := s.ensureNameAvailable(*req.Name, feature.ApplicationID, feature.ID); err != nil {
			return models.Feature{}, err
		}
	}

	if transformer.ApplyFeaturePatchRequestToModel(req, &feature) {
		if err := s.featureRepository.Save(nil, &feature); err != nil {
			if shared.IsDuplicateKeyError(err) {
				return models.Feature{}, shared.NewConflictError("a feature with this name already exists in the application", err)
			}
			return models.Feature{}, shared.NewStorageError(err)
		}
	}

	updated, err := s.featureRepository.ReadWithApplication(feature.ID)
	if err != nil {
		return models.Feature{}, shared.NewStorageError(err)
	}
	return updated, nil
}

func (s *featureService) Delete(id string) error {
	if _, err := s.featureRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "feature not found")
	}

	hasTestCases, err := s.featureRepository.HasTestCases(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	if hasTestCases {
		return shared.NewConflictError("cannot delete a feature which still has test cases", nil)
	}

	if err := s.featureRepository.Delete(nil, id); err != nil {
		return shared.StorageErrorOr(err, "feature not found")
	}
	return nil
}
