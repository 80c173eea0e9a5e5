package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"warehouse_landing_go/config"
	"warehouse_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLocale(t *testing.T, cfg *config.Config, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Locale(cfg)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return c, rec
}

func langCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "lang" {
			return cookie
		}
	}
	return nil
}

func TestLocale(t *testing.T) {
	cfg := &config.Config{Environment: "development", DefaultLanguage: "en"}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		c, rec := runLocale(t, cfg, httptest.NewRequest(http.MethodGet, "/?lang=es", nil))
		assert.Equal(t, "es", c.Get("locale"))

		cookie := langCookie(rec)
		require.NotNil(t, cookie)
		assert.Equal(t, "es", cookie.Value)
		assert.False(t, cookie.Secure)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("UnsupportedQueryParamIgnored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
		c, rec := runLocale(t, cfg, req)
		assert.Equal(t, "es", c.Get("locale"))
		assert.Nil(t, langCookie(rec))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "es"})
		req.Header.Set("Accept-Language", "en-US")
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
		c, _ := runLocale(t, cfg, req)
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("HeaderWithoutSupportedLanguage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "ja-JP")
		c, _ := runLocale(t, &config.Config{DefaultLanguage: "es"}, req)
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		c, _ := runLocale(t, cfg, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("RequestContext", func(t *testing.T) {
		c, _ := runLocale(t, cfg, httptest.NewRequest(http.MethodGet, "/?lang=es", nil))
		assert.Equal(t, "es", c.Request().Context().Value(i18n.LocaleContextKey))
		assert.Equal(t, "es", i18n.GetLocale(c.Request().Context()))
	})

	t.Run("SecureCookieInProduction", func(t *testing.T) {
		_, rec := runLocale(t, &config.Config{Environment: "production"}, httptest.NewRequest(http.MethodGet, "/?lang=en", nil))
		cookie := langCookie(rec)
		require.NotNil(t, cookie)
		assert.True(t, cookie.Secure)
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "es")
		assert.Equal(t, "es", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "en", GetLocale(c))
	})
}
