package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"warehouse_landing_go/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", "test-csrf-token")
		assert.Equal(t, "test-csrf-token", GetCSRFToken(c))
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "", GetCSRFToken(c))
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123)
		assert.Equal(t, "", GetCSRFToken(c))
	})
}

func TestCSRF(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "development"}
	e.Use(CSRF(cfg))
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, CSRFTokenFromContext(c.Request().Context()))
	})
	e.POST("/track", func(c echo.Context) error {
		return c.NoContent(http.StatusAccepted)
	})

	t.Run("GET exposes token to templates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Body.String())
	})

	t.Run("POST without token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/track", strings.NewReader("{}")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("POST with header token is accepted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		token := rec.Body.String()
		var cookie *http.Cookie
		for _, ck := range rec.Result().Cookies() {
			if ck.Name == "_csrf" {
				cookie = ck
			}
		}
		require.NotNil(t, cookie)

		req := httptest.NewRequest(http.MethodPost, "/track", strings.NewReader("{}"))
		req.Header.Set("X-CSRF-Token", token)
		req.AddCookie(cookie)
		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusAccepted, rec.Code)
	})
}
