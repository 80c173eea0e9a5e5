package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed *.json
var fs embed.FS

// SupportedLanguages lists the UI languages, default first.
var SupportedLanguages = []string{"en", "es"}

// translations stores flattened keys: "en" -> "nav.home" -> "Home"
var (
	translations = make(map[string]map[string]string)
	mutex        sync.RWMutex
	defaultLang  = "en"
)

// Load initializes the translations from the embedded JSON files.
func Load() error {
	mutex.Lock()
	defer mutex.Unlock()

	entries, err := fs.ReadDir(".")
	if err != nil {
		return fmt.Errorf("failed to read embedded locales: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")
		content, err := fs.ReadFile(entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read locale file %s: %w", entry.Name(), err)
		}

		var result map[string]interface{}
		if err := json.Unmarshal(content, &result); err != nil {
			return fmt.Errorf("failed to unmarshal locale %s: %w", entry.Name(), err)
		}

		flat := make(map[string]string)
		flatten("", result, flat)
		translations[lang] = flat
		log.Debug().Str("lang", lang).Int("keys", len(flat)).Msg("Loaded locale")
	}

	return nil
}

// flatten recursively flattens a nested map into dot-notation keys.
func flatten(prefix string, nested map[string]interface{}, result map[string]string) {
	for k, v := range nested {
		newKey := k
		if prefix != "" {
			newKey = prefix + "." + k
		}

		switch child := v.(type) {
		case map[string]interface{}:
			flatten(newKey, child, result)
		case string:
			result[newKey] = child
		default:
			result[newKey] = fmt.Sprintf("%v", child)
		}
	}
}

// SetDefault changes the fallback language. Unsupported values are ignored.
func SetDefault(lang string) {
	if !IsSupported(lang) {
		return
	}
	mutex.Lock()
	defaultLang = lang
	mutex.Unlock()
}

// Default returns the fallback language.
func Default() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return defaultLang
}

// IsSupported reports whether lang is one of SupportedLanguages.
func IsSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// Other returns the language the header toggle switches to.
func Other(lang string) string {
	if lang == "es" {
		return "en"
	}
	return "es"
}

// T retrieves a translation for the given key using the language from the context.
func T(ctx context.Context, key string, args ...map[string]interface{}) string {
	return Translate(GetLocale(ctx), key, args...)
}

// Translate retrieves a translation for a specific language code.
// Missing keys fall back to the default language, then to the key itself.
func Translate(lang, key string, args ...map[string]interface{}) string {
	mutex.RLock()
	defer mutex.RUnlock()

	if trans, ok := translations[lang]; ok {
		if val, ok := trans[key]; ok {
			return format(val, args...)
		}
	}

	if lang != defaultLang {
		if trans, ok := translations[defaultLang]; ok {
			if val, ok := trans[key]; ok {
				return format(val, args...)
			}
		}
	}

	return key
}

// format replaces {var} placeholders with values from args if present.
func format(text string, args ...map[string]interface{}) string {
	if len(args) == 0 {
		return text
	}

	for k, v := range args[0] {
		text = strings.ReplaceAll(text, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return text
}

// Localizer binds a language so callers outside a request context can translate.
type Localizer struct {
	Lang string
}

func (l Localizer) T(key string, args ...map[string]interface{}) string {
	return Translate(l.Lang, key, args...)
}

// ForContext returns a Localizer for the request language.
func ForContext(ctx context.Context) Localizer {
	return Localizer{Lang: GetLocale(ctx)}
}

// PreferenceStore persists the visitor's language choice between visits.
type PreferenceStore interface {
	Read() (string, bool)
	Write(lang string) error
}

// ResolvePreference picks the language for a request. An explicit supported
// request wins and is persisted; otherwise a stored supported preference is
// used; otherwise ok is false and the caller negotiates.
func ResolvePreference(store PreferenceStore, requested string) (lang string, ok bool) {
	requested = strings.ToLower(strings.TrimSpace(requested))
	if IsSupported(requested) {
		if store != nil {
			if err := store.Write(requested); err != nil {
				log.Warn().Err(err).Str("lang", requested).Msg("Failed to persist language preference")
			}
		}
		return requested, true
	}
	if store != nil {
		if stored, found := store.Read(); found && IsSupported(stored) {
			return stored, true
		}
	}
	return "", false
}

type contextKey string

const LocaleContextKey contextKey = "locale"

// GetLocale extracts the locale from the context, defaulting to the default language.
func GetLocale(ctx context.Context) string {
	if val := ctx.Value(LocaleContextKey); val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return Default()
}

// WithLocale stores lang in ctx for GetLocale.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, LocaleContextKey, lang)
}
