package monitoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTracing(t *testing.T) {
	t.Run("should return a noop shutdown without endpoint", func(t *testing.T) {
		shutdown, err := InitTracing(context.Background(), "", "dev", "test")
		assert.Nil(t, err)
		assert.Nil(t, shutdown(context.Background()))
	})
}

func TestAlert(t *testing.T) {
	t.Run("should not panic without error and without sentry client", func(t *testing.T) {
		assert.NotPanics(t, func() {
			Alert("something failed", nil)
		})
	})
}
