package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"warehouse_landing_go/config"
	"warehouse_landing_go/services"

	"github.com/rs/zerolog/log"
)

// sync-media uploads the images under a local directory to the configured
// media storage, keeping their relative paths as keys. Keys that already
// exist are skipped unless -force is given.
func main() {
	dir := flag.String("dir", "", "local directory to upload (defaults to LANDING_MEDIA_DIR)")
	force := flag.Bool("force", false, "overwrite keys that already exist")
	dryRun := flag.Bool("dry-run", false, "list what would be uploaded")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	services.InitLogger(cfg)
	services.InitializeStorage(cfg)

	source := *dir
	if source == "" {
		source = cfg.MediaDir
	}

	stats, err := syncDir(context.Background(), services.Storage, source, *force, *dryRun)
	if err != nil {
		log.Fatal().Err(err).Str("dir", source).Msg("Media sync failed")
	}

	fmt.Printf("Uploaded: %d\nSkipped:  %d\nFailed:   %d\n", stats.uploaded, stats.skipped, stats.failed)
	if stats.failed > 0 {
		os.Exit(1)
	}
}

type syncStats struct {
	uploaded int
	skipped  int
	failed   int
}

func syncDir(ctx context.Context, storage services.StorageProvider, root string, force, dryRun bool) (syncStats, error) {
	var stats syncStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key, err := services.CleanMediaKey(filepath.ToSlash(rel))
		if err != nil {
			log.Warn().Str("path", path).Msg("Skipping file with unusable key")
			stats.skipped++
			return nil
		}

		if !force {
			exists, err := storage.Exists(ctx, key)
			if err != nil {
				log.Error().Err(err).Str("key", key).Msg("Failed to check media key")
				stats.failed++
				return nil
			}
			if exists {
				stats.skipped++
				return nil
			}
		}

		if dryRun {
			log.Info().Str("key", key).Msg("Would upload")
			stats.uploaded++
			return nil
		}

		if err := upload(ctx, storage, path, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("Upload failed")
			stats.failed++
			return nil
		}
		log.Info().Str("key", key).Msg("Uploaded")
		stats.uploaded++
		return nil
	})

	return stats, err
}

func upload(ctx context.Context, storage services.StorageProvider, path, key string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	_, err = storage.UploadReader(ctx, file, key, services.ContentTypeFor(key), info.Size())
	return err
}
