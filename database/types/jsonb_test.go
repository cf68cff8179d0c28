package databasetypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONBScan(t *testing.T) {
	t.Run("should scan byte slices", func(t *testing.T) {
		var j JSONB
		err := j.Scan([]byte(`{"pipelineId":"42"}`))
		assert.Nil(t, err)
		assert.Equal(t, "42", j["pipelineId"])
	})

	t.Run("should scan strings returned by sqlite", func(t *testing.T) {
		var j JSONB
		err := j.Scan(`{"failedCount":3}`)
		assert.Nil(t, err)
		assert.Equal(t, float64(3), j["failedCount"])
	})

	t.Run("should treat null as an empty document", func(t *testing.T) {
		var j JSONB
		err := j.Scan(nil)
		assert.Nil(t, err)
		assert.Empty(t, j)
	})

	t.Run("should fail for unsupported types", func(t *testing.T) {
		var j JSONB
		assert.Error(t, j.Scan(42))
	})
}

func TestJSONBValue(t *testing.T) {
	t.Run("should marshal nil to an empty object", func(t *testing.T) {
		var j JSONB
		v, err := j.Value()
		assert.Nil(t, err)
		assert.Equal(t, "{}", v)
	})
}

func TestJSONBFromStruct(t *testing.T) {
	t.Run("should convert a struct using its json tags", func(t *testing.T) {
		j, err := JSONBFromStruct(struct {
			Branch string `json:"branch"`
		}{Branch: "main"})
		assert.Nil(t, err)
		assert.Equal(t, "main", j["branch"])
	})
}
