package middlewares

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l3montree-dev/dashcase/accesscontrol"
	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/mocks"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Response {
	t.Helper()
	var res shared.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func newTestServer() *echo.Echo {
	return Server(config.Config{Environment: "test", CORSOrigins: []string{"http://localhost:5173"}})
}

func TestErrorHandler(t *testing.T) {
	t.Run("should translate domain errors into the envelope without leaking the internal cause", func(t *testing.T) {
		e := newTestServer()
		e.GET("/boom/", func(ctx echo.Context) error {
			return shared.NewNotFoundError("group not found", errors.New("record not found in groups"))
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		res := decodeEnvelope(t, rec)
		assert.False(t, res.Success)
		assert.Equal(t, "group not found", res.Message)
		assert.NotContains(t, rec.Body.String(), "record not found in groups")
	})

	t.Run("should answer plain errors with a generic 500", func(t *testing.T) {
		e := newTestServer()
		e.GET("/boom/", func(ctx echo.Context) error {
			return errors.New("connection reset by peer")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeEnvelope(t, rec).Message)
	})

	t.Run("should use the envelope for unknown routes", func(t *testing.T) {
		e := newTestServer()

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		res := decodeEnvelope(t, rec)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("should not write a body for HEAD requests", func(t *testing.T) {
		e := newTestServer()
		e.HEAD("/boom/", func(ctx echo.Context) error {
			return shared.NewForbiddenError("insufficient permissions", nil)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/boom/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestRecoverMiddleware(t *testing.T) {
	t.Run("should answer a panicking handler with 500", func(t *testing.T) {
		e := newTestServer()
		e.GET("/panic/", func(ctx echo.Context) error {
			panic("nil map write")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic/", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeEnvelope(t, rec).Message)
	})
}

func TestSessionMiddleware(t *testing.T) {
	user := models.User{Model: models.Model{ID: "user-1"}, Email: "jane@dashcase.dev", Role: models.UserRoleUser, Status: models.UserStatusActive}

	handler := func(ctx echo.Context) error {
		session, ok := shared.MaybeGetSession(ctx)
		if !ok {
			return ctx.String(http.StatusOK, "anonymous")
		}
		return ctx.String(http.StatusOK, session.ID)
	}

	t.Run("should reject requests without a bearer token", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		e := newTestServer()
		e.GET("/me/", handler, SessionMiddleware(authService))

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject invalid tokens", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("VerifyToken", "garbage").Return(models.User{}, shared.NewUnauthorizedError("invalid token", nil))
		e := newTestServer()
		e.GET("/me/", handler, SessionMiddleware(authService))

		req := httptest.NewRequest(http.MethodGet, "/me/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeEnvelope(t, rec).Message)
	})

	t.Run("should store the resolved user as session", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("VerifyToken", "valid").Return(user, nil)
		e := newTestServer()
		e.GET("/me/", handler, SessionMiddleware(authService))

		req := httptest.NewRequest(http.MethodGet, "/me/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer valid")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("optional session should continue without a session on invalid tokens", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("VerifyToken", "expired").Return(models.User{}, shared.NewUnauthorizedError("invalid token", nil))
		e := newTestServer()
		e.GET("/maybe/", handler, OptionalSessionMiddleware(authService))

		req := httptest.NewRequest(http.MethodGet, "/maybe/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer expired")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "anonymous", rec.Body.String())
	})

	t.Run("optional session should resolve a valid token", func(t *testing.T) {
		authService := mocks.NewAuthService(t)
		authService.On("VerifyToken", "valid").Return(user, nil)
		e := newTestServer()
		e.GET("/maybe/", handler, OptionalSessionMiddleware(authService))

		req := httptest.NewRequest(http.MethodGet, "/maybe/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer valid")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "user-1", rec.Body.String())
	})
}

func TestAccessControlFactory(t *testing.T) {
	rbac, err := accesscontrol.NewDefaultRBAC()
	require.NoError(t, err)
	adminOnly := AccessControlFactory(rbac)(shared.ObjectUser, shared.ActionRead)

	withSession := func(user models.User) echo.MiddlewareFunc {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(ctx echo.Context) error {
				shared.SetSession(ctx, user)
				return next(ctx)
			}
		}
	}
	ok := func(ctx echo.Context) error { return ctx.NoContent(http.StatusOK) }

	t.Run("should let admins pass", func(t *testing.T) {
		e := newTestServer()
		e.GET("/users/", ok, withSession(models.User{Role: models.UserRoleAdmin}), adminOnly)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should answer 403 for non admins", func(t *testing.T) {
		e := newTestServer()
		e.GET("/users/", ok, withSession(models.User{Role: models.UserRoleUser}), adminOnly)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("should answer 401 without a session", func(t *testing.T) {
		e := newTestServer()
		e.GET("/users/", ok, adminOnly)

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("should answer 429 after the burst is used up", func(t *testing.T) {
		e := newTestServer()
		e.POST("/login/", func(ctx echo.Context) error { return ctx.NoContent(http.StatusOK) }, RateLimiter(rate.Limit(0.0001), 2))

		codes := make([]int, 0, 3)
		for range 3 {
			req := httptest.NewRequest(http.MethodPost, "/login/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})
}
