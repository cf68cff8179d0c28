package gitlabint

import (
	"testing"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/stretchr/testify/assert"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

func TestConvertPipelineStatus(t *testing.T) {
	tests := []struct {
		state    string
		expected models.PipelineStatus
	}{
		{"success", models.PipelineStatusPassed},
		{"failed", models.PipelineStatusFailed},
		{"canceled", models.PipelineStatusCanceled},
		{"skipped", models.PipelineStatusSkipped},
		{"running", models.PipelineStatusRunning},
		{"created", models.PipelineStatusPending},
		{"waiting_for_resource", models.PipelineStatusPending},
		{"manual", models.PipelineStatusPending},
		{"", models.PipelineStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConvertPipelineStatus(tt.state))
		})
	}
}

func TestPipelineInfoToShared(t *testing.T) {
	t.Run("should convert the pipeline id to a string and keep the ref", func(t *testing.T) {
		createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		info := pipelineInfoToShared(&gitlab.PipelineInfo{
			ID:        4711,
			Ref:       "main",
			Status:    "failed",
			WebURL:    "https://gitlab.example.com/p/-/pipelines/4711",
			CreatedAt: &createdAt,
		})

		assert.Equal(t, "4711", info.ID)
		assert.Equal(t, "main", info.Ref)
		assert.Equal(t, models.PipelineStatusFailed, info.Status)
		assert.Equal(t, createdAt, info.CreatedAt)
	})

	t.Run("should leave the creation time empty when gitlab does not report it", func(t *testing.T) {
		info := pipelineInfoToShared(&gitlab.PipelineInfo{ID: 1, Status: "success"})
		assert.True(t, info.CreatedAt.IsZero())
	})
}

func TestFromAccessToken(t *testing.T) {
	t.Run("should default to gitlab.com when no base url is configured", func(t *testing.T) {
		client, err := NewGitlabClientFactory().FromAccessToken("token", "")
		assert.Nil(t, err)
		assert.Equal(t, "https://gitlab.com/api/v4/", client.(gitlabClient).BaseURL().String())
	})

	t.Run("should use the configured base url", func(t *testing.T) {
		client, err := NewGitlabClientFactory().FromAccessToken("token", "https://gitlab.example.com/")
		assert.Nil(t, err)
		assert.Equal(t, "https://gitlab.example.com/api/v4/", client.(gitlabClient).BaseURL().String())
	})
}
