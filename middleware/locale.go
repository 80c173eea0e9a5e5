package middleware

import (
	"context"
	"net/http"
	"time"

	"warehouse_landing_go/config"
	"warehouse_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

const langCookieName = "lang"

// languageMatcher negotiates Accept-Language against the supported UI languages.
var languageMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(i18n.SupportedLanguages))
	for _, l := range i18n.SupportedLanguages {
		tags = append(tags, language.Make(l))
	}
	return language.NewMatcher(tags)
}()

// CookiePreferenceStore keeps the visitor's language in the "lang" cookie.
type CookiePreferenceStore struct {
	c      echo.Context
	secure bool
}

// NewCookiePreferenceStore returns a store bound to the current request.
func NewCookiePreferenceStore(c echo.Context, secure bool) *CookiePreferenceStore {
	return &CookiePreferenceStore{c: c, secure: secure}
}

func (s *CookiePreferenceStore) Read() (string, bool) {
	cookie, err := s.c.Cookie(langCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *CookiePreferenceStore) Write(lang string) error {
	s.c.SetCookie(&http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour), // 1 year
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Configured default
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := NewCookiePreferenceStore(c, cfg.IsProduction())

			lang, ok := i18n.ResolvePreference(store, c.QueryParam("lang"))
			if !ok {
				lang = negotiate(c.Request().Header.Get("Accept-Language"), cfg.DefaultLanguage)
			}

			c.Set("locale", lang)

			// Templ components read the locale from the request context
			ctx := context.WithValue(c.Request().Context(), i18n.LocaleContextKey, lang)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func negotiate(acceptLanguage, fallback string) string {
	if acceptLanguage == "" {
		return fallbackLanguage(fallback)
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallbackLanguage(fallback)
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return fallbackLanguage(fallback)
	}
	return i18n.SupportedLanguages[index]
}

func fallbackLanguage(lang string) string {
	if i18n.IsSupported(lang) {
		return lang
	}
	return i18n.SupportedLanguages[0]
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.Default()
}
