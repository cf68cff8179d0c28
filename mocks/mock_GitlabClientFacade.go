package mocks

import (
	"context"

	shared "github.com/l3montree-dev/dashcase/shared"
	mock "github.com/stretchr/testify/mock"
)

// GitlabClientFacade is a mock type for the GitlabClientFacade type
type GitlabClientFacade struct {
	mock.Mock
}

// ListProjectPipelines provides a mock function with given fields: ctx, projectID, limit
func (_m *GitlabClientFacade) ListProjectPipelines(ctx context.Context, projectID string, limit int) ([]shared.GitlabPipelineInfo, error) {
	ret := _m.Called(ctx, projectID, limit)

	if len(ret) == 0 {
		panic("no return value specified for ListProjectPipelines")
	}

	var r0 []shared.GitlabPipelineInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, int) ([]shared.GitlabPipelineInfo, error)); ok {
		return rf(ctx, projectID, limit)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]shared.GitlabPipelineInfo)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// NewGitlabClientFacade creates a new instance of GitlabClientFacade. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewGitlabClientFacade(t interface {
	mock.TestingT
	Cleanup(func())
}) *GitlabClientFacade {
	mock := &GitlabClientFacade{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
