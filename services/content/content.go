// Package content loads the per-language landing page content embedded in the binary.
package content

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"warehouse_landing_go/models"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed warehouse_*.yaml
var fs embed.FS

var (
	mu       sync.RWMutex
	byLang   = make(map[string]*models.WarehouseContent)
	fallback = "en"
)

// Load parses every embedded warehouse_<lang>.yaml file.
func Load() error {
	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded content: %w", err)
	}

	loaded := make(map[string]*models.WarehouseContent)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		lang := strings.TrimSuffix(strings.TrimPrefix(name, "warehouse_"), ".yaml")

		raw, err := fs.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read content file %s: %w", name, err)
		}
		c, err := Parse(raw)
		if err != nil {
			return fmt.Errorf("content %s: %w", name, err)
		}
		loaded[lang] = c
		log.Debug().Str("lang", lang).Int("fields", len(c.LeadForm.Fields)).Msg("Loaded content")
	}

	if _, ok := loaded[fallback]; !ok {
		return fmt.Errorf("missing content for fallback language %q", fallback)
	}

	mu.Lock()
	byLang = loaded
	mu.Unlock()
	return nil
}

// Parse decodes and validates one content document.
func Parse(raw []byte) (*models.WarehouseContent, error) {
	var c models.WarehouseContent
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// For returns the content for lang, or the fallback language when lang has none.
func For(lang string) *models.WarehouseContent {
	mu.RLock()
	defer mu.RUnlock()
	if c, ok := byLang[lang]; ok {
		return c
	}
	return byLang[fallback]
}
