package services

import (
	"log/slog"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
)

type userService struct {
	userRepository         shared.UserRepository
	subscriptionRepository shared.GroupSubscriptionRepository
	groupRepository        shared.GroupRepository
	testRequestRepository  shared.TestRequestRepository
	authService            shared.AuthService
}

func NewUserService(
	userRepository shared.UserRepository,
	subscriptionRepository shared.GroupSubscriptionRepository,
	groupRepository shared.GroupRepository,
	testRequestRepository shared.TestRequestRepository,
	authService shared.AuthService,
) *userService {
	return &userService{
		userRepository:         userRepository,
		subscriptionRepository: subscriptionRepository,
		groupRepository:        groupRepository,
		testRequestRepository:  testRequestRepository,
		authService:            authService,
	}
}

func (s *userService) ensureEmailAvailable(email string, ownID string) error {
	existing, err := s.userRepository.FindByEmail(email)
	if err == nil && existing.ID != ownID {
		return shared.NewConflictError("email already registered", nil)
	}
	if err != nil && !shared.IsNotFound(err) {
		return shared.NewStorageError(err)
	}
	return nil
}

func (s *userService) Create(req dtos.UserCreateRequest) (models.User, error) {
	if err := s.ensureEmailAvailable(models.NormalizeEmail(req.Email), ""); err != nil {
		return models.User{}, err
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return models.User{}, shared.NewUnexpectedError(err)
	}

	user := transformer.UserCreateRequestToModel(req, hash)
	if err := s.userRepository.Create(nil, &user); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.User{}, shared.NewConflictError("email already registered", err)
		}
		return models.User{}, shared.NewStorageError(err)
	}
	slog.Info("user created", "userID", user.ID, "role", user.Role)
	return user, nil
}

func (s *userService) Update(id string, req dtos.UserPatchRequest) (models.User, error) {
	user, err := s.userRepository.Read(id)
	if err != nil {
		return models.User{}, shared.StorageErrorOr(err, "user not found")
	}

	if req.Email != nil && models.NormalizeEmail(*req.Email) != user.Email {
		if err := s.ensureEmailAvailable(models.NormalizeEmail(*req.Email), user.ID); err != nil {
			return models.User{}, err
		}
	}

	updated := transformer.ApplyUserPatchRequestToModel(req, &user)
	if req.Password != nil && *req.Password != "" {
		hash, err := s.authService.HashPassword(*req.Password)
		if err != nil {
			return models.User{}, shared.NewUnexpectedError(err)
		}
		user.PasswordHash = hash
		updated = true
	}
	if !updated {
		return user, nil
	}

	if err := s.userRepository.Save(nil, &user); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.User{}, shared.NewConflictError("email already registered", err)
		}
		return models.User{}, shared.NewStorageError(err)
	}
	return user, nil
}

func (s *userService) Delete(id string) error {
	if _, err := s.userRepository.Read(id); err != nil {
		return shared.StorageErrorOr(err, "user not found")
	}

	// requests keep their requester
	count, err := s.testRequestRepository.CountByRequester(id)
	if err != nil {
		return shared.NewStorageError(err)
	}
	if count > 0 {
		return shared.NewConflictError("user has test requests", nil)
	}

	if err := s.userRepository.Delete(nil, id); err != nil {
		if shared.IsForeignKeyError(err) {
			return shared.NewConflictError("user has test requests", err)
		}
		return shared.StorageErrorOr(err, "user not found")
	}
	return nil
}

func (s *userService) Subscribe(userID, groupID string) (models.GroupSubscription, error) {
	group, err := s.groupRepository.Read(groupID)
	if err != nil {
		return models.GroupSubscription{}, shared.StorageErrorOr(err, "group not found")
	}

	if _, err := s.subscriptionRepository.FindByUserAndGroup(userID, groupID); err == nil {
		return models.GroupSubscription{}, shared.NewConflictError("already subscribed to this group", nil)
	} else if !shared.IsNotFound(err) {
		return models.GroupSubscription{}, shared.NewStorageError(err)
	}

	subscription := models.GroupSubscription{UserID: userID, GroupID: groupID}
	if err := s.subscriptionRepository.Create(nil, &subscription); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return models.GroupSubscription{}, shared.NewConflictError("already subscribed to this group", err)
		}
		return models.GroupSubscription{}, shared.NewStorageError(err)
	}
	subscription.Group = group
	return subscription, nil
}

func (s *userService) Unsubscribe(userID, groupID string) error {
	subscription, err := s.subscriptionRepository.FindByUserAndGroup(userID, groupID)
	if err != nil {
		return shared.StorageErrorOr(err, "subscription not found")
	}
	if err := s.subscriptionRepository.Delete(nil, subscription.ID); err != nil {
		return shared.StorageErrorOr(err, "subscription not found")
	}
	return nil
}
