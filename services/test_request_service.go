package services

import (
	"context"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/transformer"
	"github.com/l3montree-dev/dashcase/utils"
)

type testRequestService struct {
	testRequestRepository shared.TestRequestRepository
	applicationRepository shared.ApplicationRepository
	userRepository        shared.UserRepository
	testCaseRepository    shared.TestCaseRepository
	notificationService   shared.NotificationService
	now                   func() time.Time
}

func NewTestRequestService(
	testRequestRepository shared.TestRequestRepository,
	applicationRepository shared.ApplicationRepository,
	userRepository shared.UserRepository,
	testCaseRepository shared.TestCaseRepository,
	notificationService shared.NotificationService,
) *testRequestService {
	return &testRequestService{
		testRequestRepository: testRequestRepository,
		applicationRepository: applicationRepository,
		userRepository:        userRepository,
		testCaseRepository:    testCaseRepository,
		notificationService:   notificationService,
		now:                   time.Now,
	}
}

func (s *testRequestService) ensureReferences(assigneeID, generatedTestCaseID *string) error {
	if assigneeID != nil {
		if _, err := s.userRepository.Read(*assigneeID); err != nil {
			return shared.StorageErrorOr(err, "assignee not found")
		}
	}
	if generatedTestCaseID != nil {
		if _, err := s.testCaseRepository.Read(*generatedTestCaseID); err != nil {
			return shared.StorageErrorOr(err, "test case not found")
		}
	}
	return nil
}

func (s *testRequestService) save(tx shared.DB, request *models.TestRequest) error {
	if err := s.testRequestRepository.Save(tx, request); err != nil {
		if shared.IsDuplicateKeyError(err) {
			return shared.NewConflictError("the test case is already linked to another request", err)
		}
		return shared.NewStorageError(err)
	}
	return nil
}

func (s *testRequestService) Create(ctx context.Context, requester models.User, req dtos.TestRequestCreateRequest) (models.TestRequest, error) {
	app, err := s.applicationRepository.Read(req.ApplicationID)
	if err != nil {
		return models.TestRequest{}, shared.StorageErrorOr(err, "application not found")
	}

	request := transformer.TestRequestCreateRequestToModel(req, requester.ID)
	if err := s.testRequestRepository.Create(nil, &request); err != nil {
		return models.TestRequest{}, shared.NewStorageError(err)
	}

	s.notificationService.Notify(ctx, models.NotificationTypeRequestNew, &app.GroupID, map[string]any{
		"request": map[string]any{
			"id":          request.ID,
			"title":       request.Title,
			"description": request.Description,
		},
		"application": map[string]any{
			"id":   app.ID,
			"name": app.Name,
		},
		"requester": map[string]any{
			"firstName": requester.FirstName,
			"lastName":  requester.LastName,
		},
	})

	created, err := s.testRequestRepository.ReadWithDetails(request.ID)
	if err != nil {
		return models.TestRequest{}, shared.NewStorageError(err)
	}
	return created, nil
}

func (s *testRequestService) Update(id string, req dtos.TestRequestPatchRequest) (models.TestRequest, error) {
	request, err := s.testRequestRepository.Read(id)
	if err != nil {
		return models.TestRequest{}, shared.StorageErrorOr(err, "test request not found")
	}

	if err := s.ensureReferences(utils.EmptyThenNil(utils.SafeDereference(req.AssigneeID)), utils.EmptyThenNil(utils.SafeDereference(req.GeneratedTestCaseID))); err != nil {
		return models.TestRequest{}, err
	}

	if transformer.ApplyTestRequestPatchRequestToModel(req, &request) {
		if err := s.save(nil, &request); err != nil {
			return models.TestRequest{}, err
		}
	}

	updated, err := s.testRequestRepository.ReadWithDetails(id)
	if err != nil {
		return models.TestRequest{}, shared.NewStorageError(err)
	}
	return updated, nil
}

func (s *testRequestService) UpdateStatus(ctx context.Context, id string, req dtos.TestRequestStatusRequest) (models.TestRequest, error) {
	request, err := s.testRequestRepository.ReadWithDetails(id)
	if err != nil {
		return models.TestRequest{}, shared.StorageErrorOr(err, "test request not found")
	}

	assigneeID := utils.EmptyThenNil(req.AssigneeID)
	generatedTestCaseID := utils.EmptyThenNil(req.GeneratedTestCaseID)
	if err := s.ensureReferences(assigneeID, generatedTestCaseID); err != nil {
		return models.TestRequest{}, err
	}

	previousStatus := request.Status
	request.Status = req.Status
	// empty values leave the current reference untouched
	if assigneeID != nil {
		request.AssigneeID = assigneeID
	}
	if generatedTestCaseID != nil {
		request.GeneratedTestCaseID = generatedTestCaseID
	}
	if req.Notes != "" {
		request.AdditionalNotes = transformer.AppendNote(request.AdditionalNotes, req.Notes, s.now())
	}

	err = s.testRequestRepository.Transaction(func(tx shared.DB) error {
		return s.save(tx, &request)
	})
	if err != nil {
		return models.TestRequest{}, err
	}

	s.notificationService.Notify(ctx, models.NotificationTypeRequestStatusChange, &request.Application.GroupID, map[string]any{
		"request": map[string]any{
			"id":    request.ID,
			"title": request.Title,
			"requester": map[string]any{
				"email": request.Requester.Email,
			},
		},
		"previousStatus": string(previousStatus),
		"newStatus":      string(req.Status),
	})

	updated, err := s.testRequestRepository.ReadWithDetails(id)
	if err != nil {
		return models.TestRequest{}, shared.NewStorageError(err)
	}
	return updated, nil
}

func (s *testRequestService) Delete(id string) error {
	if err := s.testRequestRepository.Delete(nil, id); err != nil {
		return shared.StorageErrorOr(err, "test request not found")
	}
	return nil
}
