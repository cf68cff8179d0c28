package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateSlice(t *testing.T) {
	t.Run("should keep the first occurrence and preserve order", func(t *testing.T) {
		in := []string{"b@x.io", "a@x.io", "b@x.io", "c@x.io", "a@x.io"}
		out := DeduplicateSlice(in, func(s string) string { return s })
		assert.Equal(t, []string{"b@x.io", "a@x.io", "c@x.io"}, out)
	})

	t.Run("should return an empty slice for nil input", func(t *testing.T) {
		out := DeduplicateSlice[string](nil, func(s string) string { return s })
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}

func TestEmptyThenNil(t *testing.T) {
	t.Run("should return nil for blank strings", func(t *testing.T) {
		assert.Nil(t, EmptyThenNil(""))
		assert.Nil(t, EmptyThenNil("   "))
	})

	t.Run("should return a pointer for non-empty strings", func(t *testing.T) {
		v := EmptyThenNil("main")
		assert.NotNil(t, v)
		assert.Equal(t, "main", *v)
	})
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, 3, OrDefault[int](nil, 3))
	assert.Equal(t, 7, OrDefault(Ptr(7), 3))
}

func TestErrGroup(t *testing.T) {
	t.Run("should collect every result", func(t *testing.T) {
		g := ErrGroup[int](2)
		for i := 1; i <= 5; i++ {
			g.Go(func() (int, error) {
				return i, nil
			})
		}
		results, err := g.WaitAndCollect()
		assert.Nil(t, err)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, results)
	})

	t.Run("should return the error of a failed function", func(t *testing.T) {
		g := ErrGroup[int](0)
		g.Go(func() (int, error) { return 0, errors.New("boom") })
		g.Go(func() (int, error) { return 1, nil })
		_, err := g.WaitAndCollect()
		assert.EqualError(t, err, "boom")
	})
}
