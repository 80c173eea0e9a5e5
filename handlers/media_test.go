package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"warehouse_landing_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gallery"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery", "dock.webp"), []byte("RIFFwebp"), 0644))

	saved := services.Storage
	services.Storage = services.NewLocalStorage(dir)
	t.Cleanup(func() { services.Storage = saved })

	get := func(key string) (int, string, http.Header, error) {
		_, c, rec := setupEcho(http.MethodGet, "/media/"+key, nil)
		c.SetParamNames("*")
		c.SetParamValues(key)
		err := MediaHandler(c)
		return rec.Code, rec.Body.String(), rec.Header(), err
	}

	t.Run("Existing file", func(t *testing.T) {
		code, body, header, err := get("gallery/dock.webp")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "RIFFwebp", body)
		assert.Equal(t, "image/webp", header.Get("Content-Type"))
		assert.Contains(t, header.Get("Cache-Control"), "max-age")
	})

	for _, key := range []string{"gallery/missing.jpg", "../secrets.env", ""} {
		t.Run("Not found "+key, func(t *testing.T) {
			_, _, _, err := get(key)
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusNotFound, he.Code)
		})
	}
}
