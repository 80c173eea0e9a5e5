package components

import (
	"context"
	"strings"
	"testing"

	"warehouse_landing_go/models"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	return sb.String()
}

func TestSafeHTML(t *testing.T) {
	out := render(t, SafeHTML(`<strong>36'</strong> clear <script>alert(1)</script><a href="https://example.com" onclick="x()">site</a>`))
	assert.Contains(t, out, "<strong>")
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "nofollow")
}

func TestJSONLD(t *testing.T) {
	out := render(t, JSONLD("abc", map[string]string{"name": "</script><script>x"}))
	assert.True(t, strings.HasPrefix(out, `<script type="application/ld+json" nonce="abc">`))
	assert.Equal(t, 1, strings.Count(out, "</script>"))
	assert.Equal(t, "{}", JSON(make(chan int)))
}

func TestSEOHead(t *testing.T) {
	seo := models.DefaultSEO("Warehouse Space", "Lease today").WithCanonical("https://example.com/")
	out := render(t, SEOHead(seo))

	assert.Contains(t, out, "<title>Warehouse Space</title>")
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/">`)
	assert.Contains(t, out, `hreflang="es" href="https://example.com/?lang=es"`)
	assert.Contains(t, out, `og:locale" content="en_US"`)
	assert.NotContains(t, out, "noindex")

	assert.Empty(t, render(t, SEOHead(nil)))
}

func TestSEOHeadEscaping(t *testing.T) {
	seo := models.DefaultSEO(`Bays & "Docks"`, "<b>Lease</b>").WithCanonical("javascript:alert(1)")
	out := render(t, SEOHead(seo))

	assert.Contains(t, out, "<title>Bays &amp; &#34;Docks&#34;</title>")
	assert.Contains(t, out, `content="&lt;b&gt;Lease&lt;/b&gt;"`)
	assert.NotContains(t, out, `href="javascript:`)
}
