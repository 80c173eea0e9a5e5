package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandingHandler(t *testing.T) {
	t.Run("English page", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/", nil)
		withLocale(c, "en")

		require.NoError(t, LandingHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

		body := rec.Body.String()
		assert.Contains(t, body, `<html lang="en">`)
		assert.Contains(t, body, `<link rel="canonical" href="https://harborline.example/">`)
		assert.Contains(t, body, `name="_csrf" value="test-csrf-token"`)
		assert.Contains(t, body, `data-track-id="banner-cta-desktop"`)
		assert.Contains(t, body, `data-status="idle"`)
	})

	t.Run("Spanish page", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/?lang=es", nil)
		withLocale(c, "es")

		require.NoError(t, LandingHandler(c))
		body := rec.Body.String()
		assert.Contains(t, body, `<html lang="es">`)
		assert.Contains(t, body, `og:locale" content="es_US"`)
		assert.Contains(t, body, `href="?lang=en"`)
	})
}

func TestLandingHandlerAfterRedirect(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/?submitted=1", nil)
	withLocale(c, "en")

	require.NoError(t, LandingHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `<div id="lead-form-container" data-status="submitted">`)
	assert.Contains(t, body, `data-autohide="5000"`)
	assert.Contains(t, body, "Thank you!")
}

func TestNotFoundHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/nope", nil)
	withLocale(c, "en")

	require.NoError(t, NotFoundHandler(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")
}

func TestGetSEO(t *testing.T) {
	_, c, _ := setupEcho(http.MethodGet, "/", nil)
	seo := GetSEO(contentFor("es"), "es", getConfig(c).AppURL)

	assert.Equal(t, "es", seo.Locale)
	assert.Equal(t, []string{"en"}, seo.AltLocales)
	assert.Equal(t, "https://harborline.example/", seo.Canonical)
	assert.Equal(t, "Harborline Logistics Park", seo.SiteName)
}
