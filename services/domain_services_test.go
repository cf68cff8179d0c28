package services

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/l3montree-dev/dashcase/mocks"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/storage"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type domainServices struct {
	db            shared.DB
	fixture       integrationtestutil.Fixture
	notifications *mocks.NotificationService

	users        *userService
	groups       *groupService
	applications *applicationService
	features     *featureService
	testCases    *testCaseService
	testRequests *testRequestService
}

func newDomainServices(t *testing.T) domainServices {
	db := integrationtestutil.InitSQLiteDatabase(t)
	fixture := integrationtestutil.CreateFixture(t, db)
	notifications := mocks.NewNotificationService(t)

	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	featureRepo := repositories.NewFeatureRepository(db)
	testCaseRepo := repositories.NewTestCaseRepository(db)
	testRequestRepo := repositories.NewTestRequestRepository(db)
	authService := NewAuthService(userRepo, config.Config{JWTSecret: "secret", JWTExpiresIn: time.Hour})

	return domainServices{
		db:            db,
		fixture:       fixture,
		notifications: notifications,
		users:         NewUserService(userRepo, repositories.NewGroupSubscriptionRepository(db), groupRepo, testRequestRepo, authService),
		groups:        NewGroupService(groupRepo),
		applications:  NewApplicationService(applicationRepo, groupRepo, repositories.NewStatisticsRepository(db)),
		features:      NewFeatureService(featureRepo, applicationRepo),
		testCases:     NewTestCaseService(testCaseRepo, featureRepo),
		testRequests:  NewTestRequestService(testRequestRepo, applicationRepo, userRepo, testCaseRepo, notifications),
	}
}

func TestGuardedDeletes(t *testing.T) {
	t.Run("should refuse to delete a group with applications", func(t *testing.T) {
		s := newDomainServices(t)
		err := s.groups.Delete(s.fixture.Group.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should refuse to delete an application with features", func(t *testing.T) {
		s := newDomainServices(t)
		err := s.applications.Delete(s.fixture.Application.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should refuse to delete a feature with test cases", func(t *testing.T) {
		s := newDomainServices(t)
		err := s.features.Delete(s.fixture.Feature.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should delete bottom up once the children are gone", func(t *testing.T) {
		s := newDomainServices(t)
		require.NoError(t, s.testCases.Delete(s.fixture.TestCase.ID))
		require.NoError(t, s.features.Delete(s.fixture.Feature.ID))
		require.NoError(t, s.applications.Delete(s.fixture.Application.ID))
		require.NoError(t, s.groups.Delete(s.fixture.Group.ID))
	})

	t.Run("should answer 404 when deleting an unknown test case", func(t *testing.T) {
		s := newDomainServices(t)
		err := s.testCases.Delete("unknown")
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})

	t.Run("should refuse to delete a user who requested tests", func(t *testing.T) {
		s := newDomainServices(t)
		require.NoError(t, s.db.Create(&models.TestRequest{
			Title:         "Request",
			Description:   "desc",
			ApplicationID: s.fixture.Application.ID,
			RequesterID:   s.fixture.User.ID,
			Status:        models.TestRequestStatusNew,
			Type:          models.TestRequestTypeFront,
		}).Error)

		err := s.users.Delete(s.fixture.User.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
		require.NoError(t, s.users.Delete(s.fixture.Admin.ID))
	})
}

func TestScopedUniqueness(t *testing.T) {
	t.Run("should reject a second application with the same name in the group", func(t *testing.T) {
		s := newDomainServices(t)
		_, err := s.applications.Create(dtos.ApplicationCreateRequest{Name: "Checkout", GroupID: s.fixture.Group.ID})
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should allow the same application name in another group", func(t *testing.T) {
		s := newDomainServices(t)
		other, err := s.groups.Create(dtos.GroupCreateRequest{Name: "Logistics"})
		require.NoError(t, err)

		app, err := s.applications.Create(dtos.ApplicationCreateRequest{Name: "Checkout", GroupID: other.ID})
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusActive, app.Status)
		assert.Equal(t, "Logistics", app.Group.Name)
	})

	t.Run("should answer 404 for a feature of an unknown application", func(t *testing.T) {
		s := newDomainServices(t)
		_, err := s.features.Create(dtos.FeatureCreateRequest{Name: "x", ApplicationID: "unknown"})
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})

	t.Run("should reject a group rename onto an existing name", func(t *testing.T) {
		s := newDomainServices(t)
		other, err := s.groups.Create(dtos.GroupCreateRequest{Name: "Logistics"})
		require.NoError(t, err)

		_, err = s.groups.Update(other.ID, dtos.GroupPatchRequest{Name: utils.Ptr("Payments")})
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}

func TestUpdateSteps(t *testing.T) {
	steps := []dtos.StepInput{
		{Type: models.GherkinStepTypeGiven, Text: "a cart with one item", SubSteps: []dtos.SubStepInput{{Text: "item costs 10"}}},
		{Type: models.GherkinStepTypeWhen, Text: "the user pays"},
		{Type: models.GherkinStepTypeThen, Text: "the order is placed", Order: utils.Ptr(5)},
	}

	t.Run("should replace the steps and default the order to the position", func(t *testing.T) {
		s := newDomainServices(t)

		saved, err := s.testCases.UpdateSteps(s.fixture.TestCase.ID, steps)
		require.NoError(t, err)
		require.Len(t, saved, 3)
		assert.Equal(t, []int{1, 2, 5}, utils.Map(saved, func(step models.GherkinStep) int { return step.Order }))
		require.Len(t, saved[0].SubSteps, 1)
		assert.Equal(t, 1, saved[0].SubSteps[0].Order)
	})

	t.Run("should yield the same list when run twice", func(t *testing.T) {
		s := newDomainServices(t)

		_, err := s.testCases.UpdateSteps(s.fixture.TestCase.ID, steps)
		require.NoError(t, err)
		saved, err := s.testCases.UpdateSteps(s.fixture.TestCase.ID, steps)
		require.NoError(t, err)
		assert.Len(t, saved, 3)

		var subSteps int64
		require.NoError(t, s.db.Model(&models.GherkinSubStep{}).Count(&subSteps).Error)
		assert.Equal(t, int64(1), subSteps)
	})

	t.Run("should answer 404 for an unknown test case", func(t *testing.T) {
		s := newDomainServices(t)
		_, err := s.testCases.UpdateSteps("unknown", steps)
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})
}

func TestTestRequestService(t *testing.T) {
	ctx := context.Background()

	create := func(t *testing.T, s domainServices) models.TestRequest {
		s.notifications.On("Notify", mock.Anything, models.NotificationTypeRequestNew, &s.fixture.Group.ID, mock.Anything).Return().Once()
		request, err := s.testRequests.Create(ctx, s.fixture.User, dtos.TestRequestCreateRequest{
			Title:         "Checkout flow",
			Description:   "please test the checkout",
			ApplicationID: s.fixture.Application.ID,
		})
		require.NoError(t, err)
		return request
	}

	t.Run("should create a new front request for the caller and notify the group", func(t *testing.T) {
		s := newDomainServices(t)
		request := create(t, s)

		assert.Equal(t, models.TestRequestStatusNew, request.Status)
		assert.Equal(t, models.TestRequestTypeFront, request.Type)
		assert.Equal(t, s.fixture.User.ID, request.RequesterID)
	})

	t.Run("should append notes and notify about the status change", func(t *testing.T) {
		s := newDomainServices(t)
		request := create(t, s)
		s.testRequests.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

		s.notifications.On("Notify", mock.Anything, models.NotificationTypeRequestStatusChange, &s.fixture.Group.ID, mock.MatchedBy(func(data map[string]any) bool {
			return data["previousStatus"] == "NEW" && data["newStatus"] == "IN_ANALYSIS"
		})).Return().Once()
		_, err := s.testRequests.UpdateStatus(ctx, request.ID, dtos.TestRequestStatusRequest{
			Status:     models.TestRequestStatusInAnalysis,
			AssigneeID: s.fixture.Admin.ID,
			Notes:      "looking into it",
		})
		require.NoError(t, err)

		s.notifications.On("Notify", mock.Anything, models.NotificationTypeRequestStatusChange, &s.fixture.Group.ID, mock.Anything).Return().Once()
		updated, err := s.testRequests.UpdateStatus(ctx, request.ID, dtos.TestRequestStatusRequest{
			Status: models.TestRequestStatusApproved,
			Notes:  "approved",
		})
		require.NoError(t, err)

		assert.Equal(t, models.TestRequestStatusApproved, updated.Status)
		require.NotNil(t, updated.AssigneeID)
		assert.Equal(t, s.fixture.Admin.ID, *updated.AssigneeID)
		assert.Equal(t, "[2025-03-01T10:00:00Z] looking into it\n\n[2025-03-01T10:00:00Z] approved", *updated.AdditionalNotes)
	})

	t.Run("should answer 404 for an unknown assignee", func(t *testing.T) {
		s := newDomainServices(t)
		request := create(t, s)

		_, err := s.testRequests.UpdateStatus(ctx, request.ID, dtos.TestRequestStatusRequest{
			Status:     models.TestRequestStatusApproved,
			AssigneeID: "unknown",
		})
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})

	t.Run("should clear the assignee with an empty string", func(t *testing.T) {
		s := newDomainServices(t)
		request := create(t, s)
		_, err := s.testRequests.Update(request.ID, dtos.TestRequestPatchRequest{AssigneeID: utils.Ptr(s.fixture.Admin.ID)})
		require.NoError(t, err)

		updated, err := s.testRequests.Update(request.ID, dtos.TestRequestPatchRequest{AssigneeID: utils.Ptr("")})
		require.NoError(t, err)
		assert.Nil(t, updated.AssigneeID)
		assert.Nil(t, updated.Assignee)
	})

	t.Run("should refuse to link one test case to two requests", func(t *testing.T) {
		s := newDomainServices(t)
		first := create(t, s)
		second := create(t, s)

		_, err := s.testRequests.Update(first.ID, dtos.TestRequestPatchRequest{GeneratedTestCaseID: utils.Ptr(s.fixture.TestCase.ID)})
		require.NoError(t, err)
		_, err = s.testRequests.Update(second.ID, dtos.TestRequestPatchRequest{GeneratedTestCaseID: utils.Ptr(s.fixture.TestCase.ID)})
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}

func TestSubscriptions(t *testing.T) {
	t.Run("should subscribe once and reject the second subscription", func(t *testing.T) {
		s := newDomainServices(t)

		_, err := s.users.Subscribe(s.fixture.User.ID, s.fixture.Group.ID)
		require.NoError(t, err)
		_, err = s.users.Subscribe(s.fixture.User.ID, s.fixture.Group.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should answer 404 for an unknown group and a missing subscription", func(t *testing.T) {
		s := newDomainServices(t)

		_, err := s.users.Subscribe(s.fixture.User.ID, "unknown")
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
		err = s.users.Unsubscribe(s.fixture.User.ID, s.fixture.Group.ID)
		assert.Equal(t, http.StatusNotFound, httpCode(t, err))
	})
}

const seedFixture = `
users:
  - email: tester@dashcase.dev
    password: secret123
    firstName: Tess
    lastName: Tester
    groups: [Retail]
groups:
  - name: Retail
    applications:
      - name: Shop
        gitlabProjectId: "99"
        features:
          - name: Search
            status: PRODUCTIVE
            testCases:
              - name: Search by name
                scenarioName: Search by name
                steps:
                  - type: GIVEN
                    text: a product catalogue
                    subSteps: [with two products]
                  - type: WHEN
                    text: the user searches
`

func TestSeed(t *testing.T) {
	newSeedService := func(s domainServices) *seedService {
		return NewSeedService(
			repositories.NewUserRepository(s.db),
			repositories.NewGroupRepository(s.db),
			repositories.NewApplicationRepository(s.db),
			repositories.NewFeatureRepository(s.db),
			repositories.NewTestCaseRepository(s.db),
			repositories.NewGroupSubscriptionRepository(s.db),
			s.users, s.groups, s.applications, s.features, s.testCases,
		)
	}

	t.Run("should create the fixture once and skip it the second time", func(t *testing.T) {
		s := newDomainServices(t)
		seeder := newSeedService(s)

		result, err := seeder.Seed(context.Background(), []byte(seedFixture))
		require.NoError(t, err)
		assert.Equal(t, shared.SeedResult{Users: 1, Groups: 1, Applications: 1, Features: 1, TestCases: 1}, result)

		result, err = seeder.Seed(context.Background(), []byte(seedFixture))
		require.NoError(t, err)
		assert.Equal(t, shared.SeedResult{}, result)

		var steps int64
		require.NoError(t, s.db.Model(&models.GherkinStep{}).Count(&steps).Error)
		assert.Equal(t, int64(2), steps)
	})

	t.Run("should fail on a subscription to an unknown group", func(t *testing.T) {
		s := newDomainServices(t)
		_, err := newSeedService(s).Seed(context.Background(), []byte("users:\n  - email: a@b.dev\n    password: secret123\n    firstName: A\n    lastName: B\n    groups: [Nope]\n"))
		assert.Error(t, err)
	})

	t.Run("should reject invalid yaml", func(t *testing.T) {
		_, err := ParseSeedFixture([]byte("users: ["))
		assert.Error(t, err)
	})
}

// smallest valid png
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestSaveImage(t *testing.T) {
	t.Run("should store an image under a generated name", func(t *testing.T) {
		fs := memfs.New()
		service := NewUploadService(storage.NewBillyStorage(fs))

		url, err := service.SaveImage("test-request-images", bytes.NewReader(pngBytes))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "/static/test-request-images/"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		name := strings.TrimPrefix(url, "/static/test-request-images/")
		assert.Len(t, strings.TrimSuffix(name, ".png"), 32)
		_, err = fs.Stat("test-request-images/" + name)
		assert.NoError(t, err)
	})

	t.Run("should reject content which is not an image", func(t *testing.T) {
		service := NewUploadService(storage.NewBillyStorage(memfs.New()))

		_, err := service.SaveImage("test-request-images", strings.NewReader("#!/bin/sh\necho hi\n"))
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})

	t.Run("should reject an empty upload", func(t *testing.T) {
		service := NewUploadService(storage.NewBillyStorage(memfs.New()))

		_, err := service.SaveImage("test-request-images", strings.NewReader(""))
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}
