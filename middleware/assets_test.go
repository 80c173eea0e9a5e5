package middleware

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFileHash(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.css")
	require.NoError(t, os.WriteFile(tmpFile, []byte("body { color: red; }"), 0644))

	hash := computeFileHash(tmpFile)
	assert.Len(t, hash, 8)

	assert.Equal(t, "", computeFileHash("non_existent_file.css"))
}

func TestComputeAssetVersions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "css"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "css", "style.css"), []byte("css"), 0644))

	versions := computeAssetVersions(root)
	assert.Len(t, versions[AssetCSS], 8)
	assert.Equal(t, "1", versions[AssetAppJS], "missing files get the default version")
}

func TestGetVersionsDefault(t *testing.T) {
	ctx := context.Background()

	assert.NotEmpty(t, GetCSSVersion(ctx))
	assert.NotEmpty(t, GetAppJSVersion(ctx))
	assert.NotEmpty(t, GetFaviconVersion(ctx))
	assert.Equal(t, "1", GetAssetVersion(ctx, "js/unknown.js"))
}
