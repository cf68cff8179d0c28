package services

import (
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type groupService struct {
	groupRepository shared.GroupRepository
}

func NewGroupService(groupRepository shared.GroupRepository) *groupService {
	return &groupService{groupRepository: groupRepository}
}

func (s *groupService) ensureNameAvailable(name, ownID string) error {
	existing, err := s.groupRepository.FindByName(name)
	if err == nil && existing.ID != ownID {
		return shared.NewConflictError("a group with this name already exists", nil)
	}
	if err != nil && !shared.IsNotFound(err) {
		return shared.NewStorageError(err)
	}
	return nil
}

func (s *groupService) Create(req dtos.GroupCreateRequest) (models.Group, error) {
	if err := s.ensureNameAvailable(req.Name, ""); err != nil {
		return models.Group{}, err
	}

	group := transformer.GroupCreateRequestToModel(req)
	if err := s.groupRepository.Create(nil, &group); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.Group{}, shared.NewConflictError("a group with this name already exists", err)
		}
		return models.Group{}, shared.NewStorageError(err)
	}
	return group, nil
}

func (s *groupService) Update(id string, req dtos.GroupPatchRequest) (models.Group, error) {
	group, err := s.groupRepository.Read(id)
	if err != nil {
		return models.Group{}, shared.StorageErrorOr(err, "group not found")
	}

	if req.Name != nil && *req.Name != group.Name {
		if err := s.ensureNameAvailable(*req.Name, group.ID); err != nil {
			return models.Group{}, err
		}
	}

	if !transformer.ApplyGroupPatchRequestToModel(req, &group) {
		return group, nil
	}
	if err := s.groupRepository.Save(nil, &group); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.Group{}, shared.NewConflictError("a group with this name already exists", err)
		}
		return models.Group{}, shared.NewStorageError(err)
	}
	return group, nil
}

func (s *groupService) Delete(id string) error {
	if _, err := s.groupRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "group not found")
	}

	hasApplications, err := s.groupRepository.HasApplications(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	if hasApplications {
		return shared.NewConflictError("cannot delete a group which still has applications", nil)
	}

	if err := s.groupRepository.Delete(nil, id); err != nil {
		return shared.StorageErrorOr(err, "group not found")
	}
	return nil
}
