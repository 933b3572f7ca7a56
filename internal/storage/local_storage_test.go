package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage("http://localhost:8080/", dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("SaveOpenDelete", func(t *testing.T) {
		url, err := store.Save(ctx, "abc.jpg", strings.NewReader("jpeg-bytes"))
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/uploads/images/abc.jpg", url)

		rc, err := store.Open("abc.jpg")
		require.NoError(t, err)
		body, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, "jpeg-bytes", string(body))

		require.NoError(t, store.Delete(ctx, "abc.jpg"))
		_, err = os.Stat(filepath.Join(dir, "images", "abc.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "missing.png"))
	})

	t.Run("RejectsTraversal", func(t *testing.T) {
		_, err := store.Save(ctx, "../escape.jpg", strings.NewReader("x"))
		assert.Error(t, err)
		_, err = store.Open("nested/key.jpg")
		assert.Error(t, err)
	})
}
