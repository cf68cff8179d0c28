package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeforeCreate(t *testing.T) {
	t.Run("should generate an id when none is set", func(t *testing.T) {
		m := Model{}
		assert.Nil(t, m.BeforeCreate(nil))
		assert.NotEmpty(t, m.ID)
	})

	t.Run("should keep an id which was set by the caller", func(t *testing.T) {
		m := AppendOnlyModel{ID: "fixed"}
		assert.Nil(t, m.BeforeCreate(nil))
		assert.Equal(t, "fixed", m.ID)
	})

	t.Run("should generate distinct ids", func(t *testing.T) {
		assert.NotEqual(t, NewID(), NewID())
	})
}

func TestEnumValidation(t *testing.T) {
	t.Run("should accept the declared values", func(t *testing.T) {
		assert.True(t, FeatureStatusProductive.IsValid())
		assert.True(t, TestCaseStatusObsolete.IsValid())
		assert.True(t, PipelineStatusCanceled.IsValid())
		assert.True(t, TestResultStatusNotExecuted.IsValid())
		assert.True(t, GherkinStepTypeBut.IsValid())
	})

	t.Run("should reject unknown or lowercase values", func(t *testing.T) {
		assert.False(t, FeatureStatus("productive").IsValid())
		assert.False(t, UserRole("ROOT").IsValid())
		assert.False(t, TestRequestStatus("").IsValid())
	})
}

func TestNormalizeEmail(t *testing.T) {
	t.Run("should lowercase and trim", func(t *testing.T) {
		assert.Equal(t, "admin@dashcase.com", NormalizeEmail("  Admin@DashCase.com "))
	})
}

func TestTestRequestStatusLabel(t *testing.T) {
	t.Run("should map every status to a label", func(t *testing.T) {
		assert.Equal(t, "In analysis", TestRequestStatusInAnalysis.Label())
		assert.Equal(t, "Implemented", TestRequestStatusImplemented.Label())
	})
}
