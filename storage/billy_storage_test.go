package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillyStorageSave(t *testing.T) {
	t.Run("should write the content below the directory", func(t *testing.T) {
		fs := memfs.New()
		s := NewBillyStorage(fs)

		stored, err := s.Save("test-request-images", "abc.png", strings.NewReader("content"))
		require.NoError(t, err)
		assert.Equal(t, "test-request-images/abc.png", stored)

		f, err := fs.Open("test-request-images/abc.png")
		require.NoError(t, err)
		defer f.Close()
		b, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "content", string(b))
	})

	t.Run("should reject names which contain a path", func(t *testing.T) {
		s := NewBillyStorage(memfs.New())
		_, err := s.Save("test-request-images", "../escape.png", strings.NewReader("x"))
		assert.Error(t, err)
	})
}
