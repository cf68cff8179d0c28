package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/config"
	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/database/repositories"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) (*authService, *models.User) {
	db := integrationtestutil.InitSQLiteDatabase(t)
	service := NewAuthService(repositories.NewUserRepository(db), config.Config{
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
	})

	hash, err := service.HashPassword("secret123")
	require.NoError(t, err)
	user := models.User{
		Email:        "jane@dashcase.dev",
		PasswordHash: hash,
		FirstName:    "Jane",
		LastName:     "Doe",
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return service, &user
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected an echo.HTTPError, got %T", err)
	return httpErr.Code
}

func TestLogin(t *testing.T) {
	t.Run("should return a token which resolves back to the user", func(t *testing.T) {
		service, user := newTestAuthService(t)

		token, loggedIn, err := service.Login("  Jane@DashCase.dev ", "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)

		verified, err := service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, verified.ID)
	})

	t.Run("should answer 401 invalid credentials for a wrong password", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		_, _, err := service.Login("jane@dashcase.dev", "wrong")
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
		assert.Equal(t, "invalid credentials", err.(*echo.HTTPError).Message)
	})

	t.Run("should answer 401 invalid credentials for an unknown email", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		_, _, err := service.Login("nobody@dashcase.dev", "secret123")
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("should reject an inactive user with the same answer", func(t *testing.T) {
		service, user := newTestAuthService(t)
		user.Status = models.UserStatusInactive
		require.NoError(t, service.userRepository.Save(nil, user))

		_, _, err := service.Login("jane@dashcase.dev", "secret123")
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
		assert.Equal(t, "invalid credentials", err.(*echo.HTTPError).Message)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("should reject an expired token", func(t *testing.T) {
		service, user := newTestAuthService(t)
		issuedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return issuedAt }
		token, err := service.IssueToken(user.ID)
		require.NoError(t, err)

		service.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		_, err = service.VerifyToken(token)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		service, user := newTestAuthService(t)
		other := NewAuthService(service.userRepository, config.Config{JWTSecret: "other", JWTExpiresIn: time.Hour})
		token, err := other.IssueToken(user.ID)
		require.NoError(t, err)

		_, err = service.VerifyToken(token)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("should reject the token of a user who was deactivated afterwards", func(t *testing.T) {
		service, user := newTestAuthService(t)
		token, err := service.IssueToken(user.ID)
		require.NoError(t, err)

		user.Status = models.UserStatusInactive
		require.NoError(t, service.userRepository.Save(nil, user))

		_, err = service.VerifyToken(token)
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})

	t.Run("should reject garbage", func(t *testing.T) {
		service, _ := newTestAuthService(t)
		_, err := service.VerifyToken("not-a-token")
		assert.Equal(t, http.StatusUnauthorized, httpCode(t, err))
	})
}

func TestRegister(t *testing.T) {
	t.Run("should create an active user with the user role", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		token, user, err := service.Register(dtos.RegisterRequest{
			Email:     "New@DashCase.dev",
			Password:  "secret123",
			FirstName: "New",
			LastName:  "Person",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "new@dashcase.dev", user.Email)
		assert.Equal(t, models.UserRoleUser, user.Role)
		assert.Equal(t, models.UserStatusActive, user.Status)
	})

	t.Run("should answer 400 for an email which is already registered", func(t *testing.T) {
		service, _ := newTestAuthService(t)

		_, _, err := service.Register(dtos.RegisterRequest{
			Email:     "JANE@dashcase.dev",
			Password:  "secret123",
			FirstName: "Jane",
			LastName:  "Again",
		})
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("should replace the password hash", func(t *testing.T) {
		service, user := newTestAuthService(t)

		require.NoError(t, service.ChangePassword(*user, "secret123", "new-secret"))

		_, _, err := service.Login(user.Email, "new-secret")
		assert.NoError(t, err)
		_, _, err = service.Login(user.Email, "secret123")
		assert.Error(t, err)
	})

	t.Run("should answer 400 when the current password is wrong", func(t *testing.T) {
		service, user := newTestAuthService(t)

		err := service.ChangePassword(*user, "wrong", "new-secret")
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	})
}
