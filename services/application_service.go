package services

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type applicationService struct {
	applicationRepository shared.ApplicationRepository
	groupRepository       shared.GroupRepository
	statisticsRepository  shared.StatisticsRepository
}

func NewApplicationService(applicationRepository shared.ApplicationRepository, groupRepository shared.GroupRepository, statisticsRepository shared.StatisticsRepository) *applicationService {
	return &applicationService{
		applicationRepository: applicationRepository,
		groupRepository:       groupRepository,
		statisticsRepository:  statisticsRepository,
	}
}

func (s *applicationService) ensureNameAvailable(name, groupID, ownID string) error {
	existing, err := s.applicationRepository.FindByNameInGroup(name, groupID)
	if err == nil && existing.ID != ownID {
		return shared.NewConflictError("an application with this name already exists in the group", nil)
	}
	if err != nil && !shared.IsNotFound(err) {
		return shared.NewStorageError(err)
	}
	return nil
}

func (s *applicationService) Create(req dtos.ApplicationCreateRequest) (models.Application, error) {
	group, err := s.groupRepository.Read(req.GroupID)
	if err != nil {
		return models.Application{}, shared.StorageErrorOr(err, "group not found")
	}
	if err := s.ensureNameAvailable(req.Name, req.GroupID, ""); err != nil {
		return models.Application{}, err
	}

	app := transformer.ApplicationCreateRequestToModel(req)
	if err := s.applicationRepository.Create(nil, &app); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.Application{}, shared.NewConflictError("an application with this name already exists in the group", err)
		}
		return models.Application{}, shared.NewStorageError(err)
	}
	app.Group = group
	return app, nil
}

func (s *applicationService) Update(id string, req dtos.ApplicationPatchRequest) (models.Application, error) {
	app, err := s.applicationRepository.Read(id)
	if err != nil {
		return models.Application{}, shared.StorageErrorOr(err, "application not found")
	}

	name, groupID := app.Name, app.GroupID
	if req.Name != nil {
		name = *req.Name
	}
	if req.GroupID != nil && *req.GroupID != app.GroupID {
		if _, err := s.groupRepository.Read(*req.GroupID); err != nil {
			return models.Application{}, shared.StorageErrorOr(err, "group not found")
		}
		groupID = *req.GroupID
	}
	if name != app.Name || groupID != app.GroupID {
		if err := s.ensureNameAvailable(name, groupID, app.ID); err != nil {
			return models.Application{}, err
		}
	}

	if transformer.ApplyApplicationPatchRequestToModel(req, &app) {
		if err := s.applicationRepository.Save(nil, &app); err != nil {
			if shared.IsDuplicateKeyError(err) {
				return models.Application{}, shared.NewConflictError("an application with this name already exists in the group", err)
			}
			return models.Application{}, shared.NewStorageError(err)
		}
	}

	updated, err := s.applicationRepository.ReadWithGroup(app.ID)
	if err != nil {
		return models.Application{}, shared.NewStorageError(err)
	}
	return updated, nil
}

func (s *applicationService) Delete(id string) error {
	if _, err := s.applicationRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "application not found")
	}

	hasFeatures, err := s.applicationRepository.HasFeatures(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	if hasFeatures {
		return shared.NewConflictError("cannot delete an application which still has features", nil)
	}

	if err := s.applicationRepository.Delete(nil, id); err != nil {
		return shared.StorageErrorOr(err, "application not found")
	}
	return nil
}

func (s *applicationService) Stats(id string) (dtos.ApplicationStatsDTO, error) {
	if _, err := s.applicationRepository.Read(id); err != nil {
		return dtos.ApplicationStatsDTO{}, shared.StorageErrorOr(err, "application not found")
	}

	features, err := s.statisticsRepository.FeaturesByStatus(id)
	if err != nil {
		return dtos.ApplicationStatsDTO{}, shared.NewStorageError(err)
	}
	testCases, err := s.statisticsRepository.TestCasesGroupedBy("status", dtos.TestCaseFilter{ApplicationID: &id})
	if err != nil {
		return dtos.ApplicationStatsDTO{}, shared.NewStorageError(err)
	}
	requests, err := s.statisticsRepository.TestRequestsByStatus(&id)
	if err != nil {
		return dtos.ApplicationStatsDTO{}, shared.NewStorageError(err)
	}

	return dtos.ApplicationStatsDTO{
		Features:  features,
		TestCases: testCases,
		Requests:  requests,
	}, nil
}
