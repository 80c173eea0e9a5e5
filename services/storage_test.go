package services

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
	storage := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	content := "fake-jpeg-bytes"
	key := "gallery/dock-doors.jpg"

	t.Run("UploadReader creates file", func(t *testing.T) {
		result, err := storage.UploadReader(ctx, strings.NewReader(content), key, "image/jpeg", int64(len(content)))
		require.NoError(t, err)
		assert.Equal(t, key, result.Key)
		assert.Equal(t, int64(len(content)), result.FileSize)
		assert.Equal(t, "/media/gallery/dock-doors.jpg", result.URL)

		exists, err := storage.Exists(ctx, key)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Get retrieves file content and type", func(t *testing.T) {
		reader, contentType, err := storage.Get(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		got, _ := io.ReadAll(reader)
		assert.Equal(t, content, string(got))
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("Missing file is ErrMediaNotFound", func(t *testing.T) {
		_, _, err := storage.Get(ctx, "gallery/missing.jpg")
		assert.ErrorIs(t, err, ErrMediaNotFound)

		exists, err := storage.Exists(ctx, "gallery/missing.jpg")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Delete removes file", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, key))
		_, err := os.Stat(filepath.Join(storage.baseDir, key))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, storage.Delete(ctx, key), "deleting twice is not an error")
	})
}

func TestCleanMediaKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		err  bool
	}{
		{raw: "gallery/a.jpg", want: "gallery/a.jpg"},
		{raw: "/media/gallery/a.jpg", want: "gallery/a.jpg"},
		{raw: "gallery//a.jpg", want: "gallery/a.jpg"},
		{raw: "../etc/passwd", err: true},
		{raw: "gallery/../../secret", err: true},
		{raw: `gallery\a.jpg`, err: true},
		{raw: "", err: true},
		{raw: "/media/", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := CleanMediaKey(tt.raw)
			if tt.err {
				assert.ErrorIs(t, err, ErrInvalidMediaKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/webp", ContentTypeFor("a.webp"))
	assert.Equal(t, "image/svg+xml", ContentTypeFor("logo.SVG"))
	assert.Equal(t, "image/png", ContentTypeFor("a.png"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("a.unknownext"))
}

func TestMediaURL(t *testing.T) {
	old := Storage
	defer func() { Storage = old }()

	Storage = nil
	assert.Equal(t, "/media/a.jpg", MediaURL("/media/a.jpg"))

	Storage = NewLocalStorage(t.TempDir())
	assert.Equal(t, "/media/gallery/a.jpg", MediaURL("/media/gallery/a.jpg"))
	assert.Equal(t, "/static/img/logo.svg", MediaURL("/static/img/logo.svg"))

	Storage = &R2Storage{bucket: "media", publicURL: "https://cdn.example.com/"}
	assert.Equal(t, "https://cdn.example.com/gallery/a.jpg", MediaURL("/media/gallery/a.jpg"))

	Storage = &R2Storage{bucket: "media"}
	assert.Equal(t, "/media/gallery/a.jpg", MediaURL("/media/gallery/a.jpg"))
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, NewLocalStorage("/tmp").IsConfigured())

	r2 := &R2Storage{bucket: "test-bucket", client: nil}
	assert.False(t, r2.IsConfigured())
}
