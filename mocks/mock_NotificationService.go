package mocks

import (
	"context"

	models "github.com/l3montree-dev/dashcase/database/models"
	mock "github.com/stretchr/testify/mock"
)

// NotificationService is a mock type for the NotificationService type
type NotificationService struct {
	mock.Mock
}

// Notify provides a mock function with given fields: ctx, notificationType, groupID, data
func (_m *NotificationService) Notify(ctx context.Context, notificationType models.NotificationType, groupID *string, data map[string]any) {
	_m.Called(ctx, notificationType, groupID, data)
}

// NewNotificationService creates a new instance of NotificationService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewNotificationService(t interface {
	mock.TestingT
	Cleanup(func())
}) *NotificationService {
	mock := &NotificationService{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
