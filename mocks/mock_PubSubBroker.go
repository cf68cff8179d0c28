package mocks

import (
	"context"

	shared "github.com/l3montree-dev/dashcase/shared"
	mock "github.com/stretchr/testify/mock"
)

// PubSubBroker is a mock type for the PubSubBroker type
type PubSubBroker struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, message
func (_m *PubSubBroker) Publish(ctx context.Context, message shared.PubSubMessage) error {
	ret := _m.Called(ctx, message)

	if len(ret) == 0 {
		panic("no return value specified for Publish")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, shared.PubSubMessage) error); ok {
		r0 = rf(ctx, message)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Subscribe provides a mock function with given fields: topic
func (_m *PubSubBroker) Subscribe(topic shared.PubSubChannel) (<-chan map[string]any, error) {
	ret := _m.Called(topic)

	if len(ret) == 0 {
		panic("no return value specified for Subscribe")
	}

	var r0 <-chan map[string]any
	var r1 error
	if rf, ok := ret.Get(0).(func(shared.PubSubChannel) (<-chan map[string]any, error)); ok {
		return rf(topic)
	}
	if rf, ok := ret.Get(0).(func(shared.PubSubChannel) <-chan map[string]any); ok {
		r0 = rf(topic)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(<-chan map[string]any)
	}

	if rf, ok := ret.Get(1).(func(shared.PubSubChannel) error); ok {
		r1 = rf(topic)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewPubSubBroker creates a new instance of PubSubBroker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPubSubBroker(t interface {
	mock.TestingT
	Cleanup(func())
}) *PubSubBroker {
	mock := &PubSubBroker{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
