package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEmpty(t, nonce1)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()

	t.Run("SetsContextAndHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := CSPNonce(CSPSources{})(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		nonce := c.Get(string(NonceKey)).(string)
		assert.NotEmpty(t, nonce)
		assert.Equal(t, nonce, GetNonce(c.Request().Context()))

		csp := rec.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "script-src 'self' 'nonce-"+nonce+"'")
		assert.Contains(t, csp, "img-src 'self' data:;")
		assert.Contains(t, csp, "connect-src 'self';")
		assert.NotContains(t, csp, "unsafe-eval")
	})

	t.Run("AllowsExtraOrigins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := CSPNonce(CSPSources{
			Img:     []string{"https://cdn.example.com/", ""},
			Connect: []string{"https://api.ipify.org?format=json", "https://api.ipify.org/other", "https://ipapi.co/json/", "not a url"},
		})(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		csp := rec.Header().Get("Content-Security-Policy")
		assert.Contains(t, csp, "img-src 'self' data: https://cdn.example.com;")
		assert.Contains(t, csp, "connect-src 'self' https://api.ipify.org https://ipapi.co;")
	})
}

func TestGetNonce(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), NonceKey, "test-nonce")
		assert.Equal(t, "test-nonce", GetNonce(ctx))
	})

	t.Run("NotExists", func(t *testing.T) {
		assert.Equal(t, "", GetNonce(context.Background()))
	})
}
