package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "http://localhost:4000/api/v1/files",
	})
	require.NoError(t, err)
	return s
}

func TestLocalStorageSaveAndGet(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	err := s.Save(ctx, "portfolio/img1.jpg", strings.NewReader("fake image bytes"), "image/jpeg")
	require.NoError(t, err)

	reader, err := s.Get(ctx, "portfolio/img1.jpg")
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	size, err := s.GetSize(ctx, "portfolio/img1.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake image bytes")), size)
}

func TestLocalStorageExistsAndDelete(t *testing.T) {
	s := newTestLocalStorage(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Save(ctx, "a/b.png", strings.NewReader("x"), "image/png"))

	exists, err = s.Exists(ctx, "a/b.png")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, s.Delete(ctx, "a/b.png"))

	exists, err = s.Exists(ctx, "a/b.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorageGetURL(t *testing.T) {
	s := newTestLocalStorage(t)

	url, err := s.GetURL(context.Background(), "portfolio/img1.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4000/api/v1/files/portfolio/img1.jpg", url)
}

func TestNewStorageUnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "carrier-pigeon"})
	assert.Error(t, err)
}
