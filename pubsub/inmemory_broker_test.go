package pubsub

import (
	"context"
	"testing"

	"github.com/l3montree-dev/dashcase/shared"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryBroker(t *testing.T) {
	t.Run("should deliver messages to every subscriber of the topic", func(t *testing.T) {
		broker := NewInMemoryBroker(10)
		a, err := broker.Subscribe(shared.NotificationChannel)
		assert.Nil(t, err)
		b, err := broker.Subscribe(shared.NotificationChannel)
		assert.Nil(t, err)
		other, err := broker.Subscribe(shared.IntegrationChange)
		assert.Nil(t, err)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.NotificationChannel, map[string]any{"type": "request_new"}))
		assert.Nil(t, err)

		assert.Equal(t, "request_new", (<-a)["type"])
		assert.Equal(t, "request_new", (<-b)["type"])
		assert.Len(t, other, 0)
	})

	t.Run("should drop messages instead of blocking when the queue is full", func(t *testing.T) {
		broker := NewInMemoryBroker(1)
		ch, err := broker.Subscribe(shared.NotificationChannel)
		assert.Nil(t, err)

		msg := shared.NewSimplePubSubMessage(shared.NotificationChannel, map[string]any{})
		assert.Nil(t, broker.Publish(context.Background(), msg))
		assert.Nil(t, broker.Publish(context.Background(), msg))
		assert.Len(t, ch, 1)
	})

	t.Run("should close subscriber channels and reject publishing afterwards", func(t *testing.T) {
		broker := NewInMemoryBroker(1)
		ch, err := broker.Subscribe(shared.NotificationChannel)
		assert.Nil(t, err)

		broker.Close()
		_, open := <-ch
		assert.False(t, open)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.NotificationChannel, nil))
		assert.Error(t, err)
	})
}
