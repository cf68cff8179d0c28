package mocks

import (
	models "github.com/l3montree-dev/dashcase/database/models"
	dtos "github.com/l3montree-dev/dashcase/dtos"
	mock "github.com/stretchr/testify/mock"
)

// AuthService is a mock type for the AuthService type
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) tokenAndUser(ret mock.Arguments) (string, models.User, error) {
	var r0 string
	var r1 models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(string)
	}
	if ret.Get(1) != nil {
		r1 = ret.Get(1).(models.User)
	}
	return r0, r1, ret.Error(2)
}

// Login provides a mock function with given fields: email, password
func (_m *AuthService) Login(email string, password string) (string, models.User, error) {
	ret := _m.Called(email, password)

	if len(ret) == 0 {
		panic("no return value specified for Login")
	}

	return _m.tokenAndUser(ret)
}

// Register provides a mock function with given fields: req
func (_m *AuthService) Register(req dtos.RegisterRequest) (string, models.User, error) {
	ret := _m.Called(req)

	if len(ret) == 0 {
		panic("no return value specified for Register")
	}

	return _m.tokenAndUser(ret)
}

// VerifyToken provides a mock function with given fields: token
func (_m *AuthService) VerifyToken(token string) (models.User, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for VerifyToken")
	}

	var r0 models.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(models.User)
	}

	return r0, ret.Error(1)
}

// ChangePassword provides a mock function with given fields: user, currentPassword, newPassword
func (_m *AuthService) ChangePassword(user models.User, currentPassword string, newPassword string) error {
	ret := _m.Called(user, currentPassword, newPassword)

	if len(ret) == 0 {
		panic("no return value specified for ChangePassword")
	}

	return ret.Error(0)
}

// IssueToken provides a mock function with given fields: userID
func (_m *AuthService) IssueToken(userID string) (string, error) {
	ret := _m.Called(userID)

	if len(ret) == 0 {
		panic("no return value specified for IssueToken")
	}

	return ret.String(0), ret.Error(1)
}

// HashPassword provides a mock function with given fields: password
func (_m *AuthService) HashPassword(password string) (string, error) {
	ret := _m.Called(password)

	if len(ret) == 0 {
		panic("no return value specified for HashPassword")
	}

	return ret.String(0), ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	mock := &AuthService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
