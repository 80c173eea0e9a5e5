package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSitemapHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, GetSitemapHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<loc>https://harborline.example/</loc>")
	assert.Contains(t, body, "<loc>https://harborline.example/?lang=es</loc>")
	assert.Contains(t, body, `hreflang="es"`)
}

func TestRobotsHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)

	require.NoError(t, RobotsHandler(c))
	assert.Contains(t, rec.Body.String(), "Sitemap: https://harborline.example/sitemap.xml")
}

func TestHealthHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/healthz", nil)

	require.NoError(t, HealthHandler(c))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
