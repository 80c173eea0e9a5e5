package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// Asset paths relative to the static root, versioned for cache busting.
const (
	AssetCSS     = "css/style.css"
	AssetAppJS   = "js/app.js"
	AssetFavicon = "img/favicon.svg"
)

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(staticDir string) {
	assetVersionsOnce.Do(func() {
		assetVersions = computeAssetVersions(staticDir)
		log.Info().Interface("versions", assetVersions).Msg("Asset versions initialized")
	})
}

func computeAssetVersions(staticDir string) map[string]string {
	versions := make(map[string]string)
	for _, asset := range []string{AssetCSS, AssetAppJS, AssetFavicon} {
		version := computeFileHash(filepath.Join(staticDir, filepath.FromSlash(asset)))
		if version == "" {
			version = "1"
		}
		versions[asset] = version
	}
	return versions
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to open file for hashing")
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to hash file")
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetAssetVersion returns the version hash for an asset, "1" when unknown.
// ctx is accepted so templates can call it like the other context helpers.
func GetAssetVersion(ctx context.Context, asset string) string {
	if v, ok := assetVersions[asset]; ok && v != "" {
		return v
	}
	return "1"
}

// GetCSSVersion returns the CSS file version hash for cache busting
func GetCSSVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, AssetCSS)
}

// GetAppJSVersion returns the app.js file version hash for cache busting
func GetAppJSVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, AssetAppJS)
}

// GetFaviconVersion returns the favicon file version hash for cache busting
func GetFaviconVersion(ctx context.Context) string {
	return GetAssetVersion(ctx, AssetFavicon)
}
