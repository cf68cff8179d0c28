package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/l3montree-dev/dashcase/mocks"
	"github.com/l3montree-dev/dashcase/services"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/storage"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type envelope[T any] struct {
	Success    bool               `json:"success"`
	Data       T                  `json:"data"`
	Message    string             `json:"message"`
	Pagination *shared.Pagination `json:"pagination"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var res envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected an http error, got %v", err)
	return he.Code
}

type testEnv struct {
	db      shared.DB
	fixture integrationtestutil.Fixture

	features    *FeatureController
	groups      *GroupController
	apps        *ApplicationController
	testCases   *TestCaseController
	requests    *TestRequestController
	pipelines   *PipelineController
	users       *UserController
	uploads     *UploadController
	uploadFiles *storage.BillyStorage
}

func newTestEnv(t *testing.T) testEnv {
	db := integrationtestutil.InitSQLiteDatabase(t)
	fixture := integrationtestutil.CreateFixture(t, db)

	userRepo := repositories.NewUserRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	subscriptionRepo := repositories.NewGroupSubscriptionRepository(db)
	applicationRepo := repositories.NewApplicationRepository(db)
	featureRepo := repositories.NewFeatureRepository(db)
	testCaseRepo := repositories.NewTestCaseRepository(db)
	testRequestRepo := repositories.NewTestRequestRepository(db)
	pipelineRepo := repositories.NewPipelineRepository(db)
	statisticsRepo := repositories.NewStatisticsRepository(db)

	authService := services.NewAuthService(userRepo, config.Config{JWTSecret: "secret", JWTExpiresIn: time.Hour})
	notifications := mocks.NewNotificationService(t)
	uploadFiles := storage.NewBillyStorage(memfs.New())

	return testEnv{
		db:          db,
		fixture:     fixture,
		features:    NewFeatureController(services.NewFeatureService(featureRepo, applicationRepo), featureRepo, testCaseRepo, pipelineRepo),
		groups:      NewGroupController(services.NewGroupService(groupRepo), groupRepo, applicationRepo, subscriptionRepo),
		apps:        NewApplicationController(services.NewApplicationService(applicationRepo, groupRepo, statisticsRepo), applicationRepo, featureRepo),
		testCases:   NewTestCaseController(services.NewTestCaseService(testCaseRepo, featureRepo), testCaseRepo, pipelineRepo),
		requests:    NewTestRequestController(services.NewTestRequestService(testRequestRepo, applicationRepo, userRepo, testCaseRepo, notifications), testRequestRepo),
		pipelines:   NewPipelineController(nil, pipelineRepo),
		users:       NewUserController(services.NewUserService(userRepo, subscriptionRepo, groupRepo, testRequestRepo, authService), userRepo, subscriptionRepo, testRequestRepo),
		uploads:     NewUploadController(services.NewUploadService(uploadFiles)),
		uploadFiles: uploadFiles,
	}
}

func TestFeatureControllerList(t *testing.T) {
	t.Run("should paginate the filtered features", func(t *testing.T) {
		env := newTestEnv(t)
		for i := range 4 {
			require.NoError(t, env.db.Create(&models.Feature{
				Name:          fmt.Sprintf("Feature %d", i),
				ApplicationID: env.fixture.Application.ID,
				Status:        models.FeatureStatusProductive,
			}).Error)
		}
		require.NoError(t, env.db.Create(&models.Feature{
			Name:          "Planned feature",
			ApplicationID: env.fixture.Application.ID,
			Status:        models.FeatureStatusPlanned,
		}).Error)

		ctx, rec := newContext(http.MethodGet, "/api/v1/features/?status=PRODUCTIVE&limit=2", nil)
		require.NoError(t, env.features.List(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		res := decode[[]dtos.FeatureDTO](t, rec)
		assert.True(t, res.Success)
		assert.Len(t, res.Data, 2)
		require.NotNil(t, res.Pagination)
		assert.Equal(t, int64(5), res.Pagination.Total)
		assert.Equal(t, 3, res.Pagination.TotalPages)
		assert.Equal(t, 1, res.Pagination.Page)
		assert.Equal(t, 2, res.Pagination.Limit)
		assert.NotNil(t, res.Data[0].Application)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodGet, "/api/v1/features/?status=DONE", nil)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.features.List(ctx)))
	})
}

func TestFeatureControllerWrite(t *testing.T) {
	t.Run("should carry a zero test case count on a created feature", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, rec := newContext(http.MethodPost, "/", jsonBody(t, dtos.FeatureCreateRequest{
			Name:          "Refunds",
			ApplicationID: env.fixture.Application.ID,
		}))

		require.NoError(t, env.features.Create(ctx))

		assert.Equal(t, http.StatusCreated, rec.Code)
		res := decode[dtos.FeatureDTO](t, rec)
		assert.Equal(t, dtos.Counts{"testCases": 0}, res.Data.Count)
	})

	t.Run("should carry the current test case count on an updated feature", func(t *testing.T) {
		env := newTestEnv(t)
		name := "Checkout flow"
		ctx, rec := newContext(http.MethodPatch, "/", jsonBody(t, dtos.FeaturePatchRequest{Name: &name}))
		ctx.SetParamNames("id")
		ctx.SetParamValues(env.fixture.Feature.ID)

		require.NoError(t, env.features.Update(ctx))

		res := decode[dtos.FeatureDTO](t, rec)
		assert.Equal(t, name, res.Data.Name)
		assert.Equal(t, dtos.Counts{"testCases": 1}, res.Data.Count)
	})
}

func TestGroupController(t *testing.T) {
	t.Run("should answer 404 for an unknown group", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodGet, "/api/v1/groups/unknown/", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues("unknown")

		assert.Equal(t, http.StatusNotFound, httpCode(t, env.groups.Read(ctx)))
	})

	t.Run("should embed the applications with their feature count", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, rec := newContext(http.MethodGet, "/", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues(env.fixture.Group.ID)

		require.NoError(t, env.groups.Read(ctx))

		res := decode[dtos.GroupDTO](t, rec)
		require.Len(t, res.Data.Applications, 1)
		assert.Equal(t, "Checkout", res.Data.Applications[0].Name)
		assert.Equal(t, int64(1), res.Data.Applications[0].Count["features"])
	})

	t.Run("should create a group with 201", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, rec := newContext(http.MethodPost, "/", jsonBody(t, dtos.GroupCreateRequest{Name: "Identity"}))

		require.NoError(t, env.groups.Create(ctx))

		assert.Equal(t, http.StatusCreated, rec.Code)
		res := decode[dtos.GroupDTO](t, rec)
		assert.Equal(t, "Identity", res.Data.Name)
		assert.Equal(t, dtos.Counts{"applications": 0, "subscriptions": 0}, res.Data.Count)
	})

	t.Run("should reject a duplicate group name", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPost, "/", jsonBody(t, dtos.GroupCreateRequest{Name: "Payments"}))

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.groups.Create(ctx)))
	})
}

func TestApplicationControllerCreate(t *testing.T) {
	t.Run("should fail validation without a name", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPost, "/", jsonBody(t, map[string]any{"groupId": env.fixture.Group.ID}))

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.apps.Create(ctx)))
	})

	t.Run("should answer 404 when the group does not exist", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPost, "/", jsonBody(t, dtos.ApplicationCreateRequest{Name: "Billing", GroupID: "missing"}))

		assert.Equal(t, http.StatusNotFound, httpCode(t, env.apps.Create(ctx)))
	})
}

func TestTestCaseControllerSteps(t *testing.T) {
	t.Run("should replace and list the steps in order", func(t *testing.T) {
		env := newTestEnv(t)
		body := dtos.UpdateStepsRequest{Steps: []dtos.StepInput{
			{Type: models.GherkinStepTypeGiven, Text: "a valid card"},
			{Type: models.GherkinStepTypeWhen, Text: "the user pays", SubSteps: []dtos.SubStepInput{{Text: "enter cvc"}}},
		}}
		ctx, rec := newContext(http.MethodPut, "/", jsonBody(t, body))
		ctx.SetParamNames("id")
		ctx.SetParamValues(env.fixture.TestCase.ID)
		require.NoError(t, env.testCases.UpdateSteps(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)

		ctx, rec = newContext(http.MethodGet, "/", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues(env.fixture.TestCase.ID)
		require.NoError(t, env.testCases.Steps(ctx))

		steps := decode[[]dtos.GherkinStepDTO](t, rec).Data
		require.Len(t, steps, 2)
		assert.Equal(t, "a valid card", steps[0].Text)
		assert.Equal(t, 1, steps[0].Order)
		assert.Equal(t, 2, steps[1].Order)
		require.Len(t, steps[1].SubSteps, 1)
		assert.Equal(t, "enter cvc", steps[1].SubSteps[0].Text)
	})

	t.Run("should reject an unknown step type", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPut, "/", strings.NewReader(`{"steps":[{"type":"MAYBE","text":"x"}]}`))
		ctx.SetParamNames("id")
		ctx.SetParamValues(env.fixture.TestCase.ID)

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.testCases.UpdateSteps(ctx)))
	})
}

func TestTestCaseControllerList(t *testing.T) {
	t.Run("should embed only the latest pipeline result", func(t *testing.T) {
		env := newTestEnv(t)
		older := models.GitlabPipeline{GitlabProjectID: "42", GitlabPipelineID: "1", Branch: "main", Status: models.PipelineStatusFailed, ExecutedAt: time.Now().Add(-time.Hour)}
		newer := models.GitlabPipeline{GitlabProjectID: "42", GitlabPipelineID: "2", Branch: "main", Status: models.PipelineStatusPassed, ExecutedAt: time.Now()}
		require.NoError(t, env.db.Create(&older).Error)
		require.NoError(t, env.db.Create(&newer).Error)
		require.NoError(t, env.db.Create(&models.TestCasePipelineResult{TestCaseID: env.fixture.TestCase.ID, PipelineID: older.ID, Status: models.TestResultStatusFailed}).Error)
		time.Sleep(10 * time.Millisecond)
		require.NoError(t, env.db.Create(&models.TestCasePipelineResult{TestCaseID: env.fixture.TestCase.ID, PipelineID: newer.ID, Status: models.TestResultStatusPassed}).Error)

		ctx, rec := newContext(http.MethodGet, "/", nil)
		require.NoError(t, env.testCases.List(ctx))

		res := decode[[]dtos.TestCaseDTO](t, rec)
		require.Len(t, res.Data, 1)
		require.Len(t, res.Data[0].PipelineResults, 1)
		assert.Equal(t, models.TestResultStatusPassed, res.Data[0].PipelineResults[0].Status)
		assert.Equal(t, int64(2), res.Data[0].Count["pipelineResults"])
	})
}

func TestTestRequestControllerMy(t *testing.T) {
	t.Run("should only list the requests of the caller", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.db.Create(&models.TestRequest{Title: "mine", Description: "d", ApplicationID: env.fixture.Application.ID, RequesterID: env.fixture.User.ID}).Error)
		require.NoError(t, env.db.Create(&models.TestRequest{Title: "theirs", Description: "d", ApplicationID: env.fixture.Application.ID, RequesterID: env.fixture.Admin.ID}).Error)

		ctx, rec := newContext(http.MethodGet, "/", nil)
		shared.SetSession(ctx, env.fixture.User)
		require.NoError(t, env.requests.My(ctx))

		res := decode[[]dtos.TestRequestDTO](t, rec)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "mine", res.Data[0].Title)
	})
}

func TestPipelineControllerResults(t *testing.T) {
	t.Run("should summarize the results of a pipeline", func(t *testing.T) {
		env := newTestEnv(t)
		pipeline := models.GitlabPipeline{GitlabProjectID: "42", GitlabPipelineID: "7", Branch: "main", Status: models.PipelineStatusFailed, ExecutedAt: time.Now()}
		require.NoError(t, env.db.Create(&pipeline).Error)
		require.NoError(t, env.db.Create(&models.TestCasePipelineResult{TestCaseID: env.fixture.TestCase.ID, PipelineID: pipeline.ID, Status: models.TestResultStatusFailed}).Error)

		ctx, rec := newContext(http.MethodGet, "/", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues(pipeline.ID)
		require.NoError(t, env.pipelines.Results(ctx))

		res := decode[dtos.PipelineResultsDTO](t, rec)
		assert.Len(t, res.Data.Results, 1)
		assert.Equal(t, dtos.PipelineSummaryDTO{Total: 1, Failed: 1}, res.Data.Summary)
	})

	t.Run("should require a project id for syncing", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPost, "/", nil)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.pipelines.Sync(ctx)))
	})
}

func TestUserControllerSubscriptions(t *testing.T) {
	t.Run("should subscribe the caller and reject a second subscription", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, rec := newContext(http.MethodPost, "/", nil)
		shared.SetSession(ctx, env.fixture.User)
		ctx.SetParamNames("groupId")
		ctx.SetParamValues(env.fixture.Group.ID)
		require.NoError(t, env.users.Subscribe(ctx))
		assert.Equal(t, http.StatusCreated, rec.Code)

		ctx, _ = newContext(http.MethodPost, "/", nil)
		shared.SetSession(ctx, env.fixture.User)
		ctx.SetParamNames("groupId")
		ctx.SetParamValues(env.fixture.Group.ID)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.users.Subscribe(ctx)))

		ctx, rec = newContext(http.MethodGet, "/", nil)
		shared.SetSession(ctx, env.fixture.User)
		require.NoError(t, env.users.Subscriptions(ctx))
		subscriptions := decode[[]dtos.SubscriptionDTO](t, rec).Data
		require.Len(t, subscriptions, 1)
		require.NotNil(t, subscriptions[0].Group)
		assert.Equal(t, "Payments", subscriptions[0].Group.Name)
	})
}

func TestUploadController(t *testing.T) {
	multipartRequest := func(t *testing.T, content []byte) (echo.Context, *httptest.ResponseRecorder) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, err := writer.CreateFormFile("file", "screenshot.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads/test-request-images/", body)
		req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
		rec := httptest.NewRecorder()
		return echo.New().NewContext(req, rec), rec
	}

	t.Run("should store an image and return its static url", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, rec := multipartRequest(t, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))

		require.NoError(t, env.uploads.TestRequestImage(ctx))

		res := decode[dtos.UploadResponse](t, rec)
		assert.True(t, strings.HasPrefix(res.Data.URL, "/static/test-request-images/"))
		assert.True(t, strings.HasSuffix(res.Data.URL, ".png"))
	})

	t.Run("should reject content which is not an image", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := multipartRequest(t, []byte("#!/bin/sh\necho hello\n"))

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.uploads.TestRequestImage(ctx)))
	})

	t.Run("should reject svg images", func(t *testing.T) {
		env := newTestEnv(t)
		svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`
		ctx, _ := multipartRequest(t, []byte(svg))

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.uploads.TestRequestImage(ctx)))
	})

	t.Run("should answer 400 without a file field", func(t *testing.T) {
		env := newTestEnv(t)
		ctx, _ := newContext(http.MethodPost, "/", strings.NewReader("{}"))

		assert.Equal(t, http.StatusBadRequest, httpCode(t, env.uploads.TestRequestImage(ctx)))
	})
}

func TestAuthController(t *testing.T) {
	t.Run("should answer with the token and the user", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("Login", "jane@dashcase.dev", "secret123").Return("token", models.User{Model: models.Model{ID: "u1"}, Email: "jane@dashcase.dev"}, nil)
		controller := NewAuthController(authService, nil)

		ctx, rec := newContext(http.MethodPost, "/", jsonBody(t, dtos.LoginRequest{Email: "jane@dashcase.dev", Password: "secret123"}))
		require.NoError(t, controller.Login(ctx))

		res := decode[dtos.AuthResponse](t, rec)
		assert.Equal(t, "token", res.Data.Token)
		assert.Equal(t, "u1", res.Data.User.ID)
	})

	t.Run("should pass invalid credentials through", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("Login", "jane@dashcase.dev", "wrong").Return("", models.User{}, shared.NewUnauthorizedError("invalid credentials", nil))
		controller := NewAuthController(authService, nil)

		ctx, _ := newContext(http.MethodPost, "/", jsonBody(t, dtos.LoginRequest{Email: "jane@dashcase.dev", Password: "wrong"}))
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, controller.Login(ctx)))
	})

	t.Run("should validate the register request before calling the service", func(t *testing.T) {
		controller := NewAuthController(mocks.NewAuthService(t), nil)

		ctx, _ := newContext(http.MethodPost, "/", jsonBody(t, dtos.RegisterRequest{Email: "not-an-email", Password: "123", FirstName: "J", LastName: "D"}))
		assert.Equal(t, http.StatusBadRequest, httpCode(t, controller.Register(ctx)))
	})
}

func TestHealthController(t *testing.T) {
	newMockedDB := func(t *testing.T) (shared.DB, sqlmock.Sqlmock) {
		sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { sqlDB.Close() })

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, DriverName: "postgres"}), &gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)
		return db, mock
	}

	t.Run("should answer ok when the database answers the ping", func(t *testing.T) {
		db, mock := newMockedDB(t)
		mock.ExpectPing()

		ctx, rec := newContext(http.MethodGet, "/api/v1/health/", nil)
		require.NoError(t, NewHealthController(db).Health(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should answer 503 when the ping fails", func(t *testing.T) {
		db, mock := newMockedDB(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		ctx, rec := newContext(http.MethodGet, "/api/v1/health/", nil)
		require.NoError(t, NewHealthController(db).Health(ctx))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"unhealthy"`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
