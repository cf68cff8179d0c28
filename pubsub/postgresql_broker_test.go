package pubsub_test

import (
	"context"
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/integrationtestutil"
	"github.com/l3montree-dev/dashcase/pubsub"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLBroker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	_, pool, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()

	receive := func(t *testing.T, ch <-chan map[string]any) map[string]any {
		select {
		case payload := <-ch:
			return payload
		case <-time.After(5 * time.Second):
			t.Fatal("no message received")
			return nil
		}
	}

	t.Run("should deliver messages to other instances but not to the sender", func(t *testing.T) {
		sender := pubsub.NewPostgreSQLBroker(pool)
		defer sender.Close() // nolint:errcheck
		receiver := pubsub.NewPostgreSQLBroker(pool)
		defer receiver.Close() // nolint:errcheck

		own, err := sender.Subscribe(shared.IntegrationChange)
		require.NoError(t, err)
		other, err := receiver.Subscribe(shared.IntegrationChange)
		require.NoError(t, err)

		err = sender.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.IntegrationChange, map[string]any{"type": "gitlab"}))
		require.NoError(t, err)

		assert.Equal(t, "gitlab", receive(t, other)["type"])
		assert.Len(t, own, 0)
	})

	t.Run("should deliver own messages when enabled", func(t *testing.T) {
		broker := pubsub.NewPostgreSQLBroker(pool)
		defer broker.Close() // nolint:errcheck
		broker.SetShouldReceiveOwnMessages(true)

		ch, err := broker.Subscribe(shared.IntegrationChange)
		require.NoError(t, err)

		err = broker.Publish(context.Background(), shared.NewSimplePubSubMessage(shared.IntegrationChange, map[string]any{"type": "azure_devops"}))
		require.NoError(t, err)

		assert.Equal(t, "azure_devops", receive(t, ch)["type"])
	})

	t.Run("should close subscriber channels on close", func(t *testing.T) {
		broker := pubsub.NewPostgreSQLBroker(pool)
		ch, err := broker.Subscribe(shared.IntegrationChange)
		require.NoError(t, err)

		require.NoError(t, broker.Close())
		_, ok := <-ch
		assert.False(t, ok)
	})
}
