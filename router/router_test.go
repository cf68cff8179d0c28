package router

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/accesscontrol"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/controllers"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/integrations/gitlabint"
	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/l3montree-dev/dashcase/middlewares"
	"github.com/l3montree-dev/dashcase/pubsub"
	"github.com/l3montree-dev/dashcase/services"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type testApp struct {
	srv         *echo.Echo
	authService shared.AuthService
	fixture     integrationtestutil.Fixture
	uploadDir   string
}

func newTestApp(t *testing.T) testApp {
	db := integrationtestutil.InitSQLiteDatabase(t)
	fixture := integrationtestutil.CreateFixture(t, db)
	uploadDir := t.TempDir()

	var srv *echo.Echo
	var authService shared.AuthService
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(config.Config{
			Environment:           "test",
			JWTSecret:             "secret",
			JWTExpiresIn:          time.Hour,
			UploadDir:             uploadDir,
			NotificationQueueSize: 10,
		}),
		fx.Supply(db),
		fx.Provide(middlewares.Server),
		fx.Provide(func() shared.PubSubBroker { return pubsub.NewInMemoryBroker(10) }),
		fx.Provide(func() shared.ClusterBroker { return pubsub.NewInMemoryBroker(10) }),
		repositories.Module,
		services.Module,
		accesscontrol.Module,
		gitlabint.Module,
		controllers.ControllerModule,
		RouterModule,
		fx.Invoke(func(CatalogRouter, TestRequestRouter, PipelineRouter) {}),
		fx.Populate(&srv, &authService),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return testApp{srv: srv, authService: authService, fixture: fixture, uploadDir: uploadDir}
}

func (a testApp) do(t *testing.T, method, target, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		token, err := a.authService.IssueToken(userID)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.srv.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	app := newTestApp(t)

	t.Run("should answer the health probe without a token", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/health/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	})

	t.Run("should expose prometheus metrics", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/metrics/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should require a token for the catalog", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/groups/", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should add the trailing slash", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/groups", app.fixture.User.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Payments")
	})

	t.Run("should forbid the user list for non admins", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/users/", app.fixture.User.ID)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should list users for admins", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/users/", app.fixture.Admin.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"totalPages":1`)
	})

	t.Run("should forbid pipeline syncs for non admins", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/api/v1/pipelines/sync/?projectId=42", app.fixture.User.ID)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should route my requests before the id route", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/v1/test-requests/my/", app.fixture.User.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should answer invalid logins with 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login/", strings.NewReader(`{"email":"user@dashcase.dev","password":"wrong-password"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		app.srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid credentials")
	})

	t.Run("should serve uploaded files", func(t *testing.T) {
		dir := filepath.Join(app.uploadDir, "test-request-images")
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "abc.png"), []byte("\x89PNG\r\n\x1a\n"), 0o600))

		rec := app.do(t, http.MethodGet, "/static/test-request-images/abc.png", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
