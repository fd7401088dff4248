package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"toko/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage_SaveDelete(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	s := storage.New(fs)

	require.NoError(t, s.Save(ctx, "products/a.png", []byte("png")))

	data, err := afero.ReadFile(fs, "/products/a.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.NoError(t, s.Delete(ctx, "products/a.png"))
	ok, err := afero.Exists(fs, "/products/a.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStorage_DeleteMissingFile(t *testing.T) {
	s := storage.New(afero.NewMemMapFs())
	assert.NoError(t, s.Delete(context.Background(), "products/missing.png"))
}

func TestFileStorage_CannotEscapeRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := storage.New(fs)

	require.NoError(t, s.Save(context.Background(), "../../products/x.jpg", []byte("jpg")))
	ok, err := afero.Exists(fs, "/products/x.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := storage.New(afero.NewMemMapFs())
	assert.ErrorIs(t, s.Save(ctx, "products/a.png", []byte("png")), context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "products/a.png"), context.Canceled)
}

func TestNewDisk_WritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	s, err := storage.NewDisk(root)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), "products/b.jpg", []byte("jpg")))

	data, err := os.ReadFile(filepath.Join(root, "products", "b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpg", string(data))
}
