package mocks

import (
	shared "github.com/l3montree-dev/dashcase/shared"
	mock "github.com/stretchr/testify/mock"
)

// GitlabClientFactory is a mock type for the GitlabClientFactory type
type GitlabClientFactory struct {
	mock.Mock
}

// FromAccessToken provides a mock function with given fields: accessToken, baseURL
func (_m *GitlabClientFactory) FromAccessToken(accessToken string, baseURL string) (shared.GitlabClientFacade, error) {
	ret := _m.Called(accessToken, baseURL)

	if len(ret) == 0 {
		panic("no return value specified for FromAccessToken")
	}

	var r0 shared.GitlabClientFacade
	var r1 error
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(shared.GitlabClientFacade)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewGitlabClientFactory creates a new instance of GitlabClientFactory. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewGitlabClientFactory(t interface {
	mock.TestingT
	Cleanup(func())
}) *GitlabClientFactory {
	mock := &GitlabClientFactory{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
