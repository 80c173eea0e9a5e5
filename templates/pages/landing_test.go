package pages

import (
	"context"
	"os"
	"strings"
	"testing"

	"warehouse_landing_go/middleware"
	"warehouse_landing_go/models"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/content"
	"warehouse_landing_go/services/i18n"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	if err := content.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func landingData(lang string) LandingData {
	c := content.For(lang)
	return LandingData{
		Lang:      lang,
		Content:   c,
		SEO:       models.SEOFromContent(c, "https://harborline.example").WithLocale(lang, i18n.Other(lang)),
		Form:      services.NewLeadForm(c.LeadForm.Fields, services.LeadFormOptions{}).View(),
		CSRFToken: "csrf-token",
		Year:      2026,
	}
}

func TestLanding(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "en")
	ctx = context.WithValue(ctx, middleware.NonceKey, "n0nce")

	var sb strings.Builder
	require.NoError(t, Landing(landingData("en")).Render(ctx, &sb))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, `<!DOCTYPE html><html lang="en">`))
	assert.Contains(t, out, `<script type="application/ld+json" nonce="n0nce">`)
	assert.Contains(t, out, `"@type":"LocalBusiness"`)
	assert.Contains(t, out, `<script defer nonce="n0nce" src="/static/js/app.js?v=`)
	assert.Contains(t, out, `hreflang="es" href="https://harborline.example/?lang=es"`)
	assert.Contains(t, out, `name="_csrf" value="csrf-token"`)
	assert.Contains(t, out, "&copy; 2026 Harborline Logistics Park")

	order := []string{`id="home"`, `id="features"`, `id="locations"`, `id="specifications"`, `id="gallery"`, `id="contact"`, `id="contact-methods"`}
	last := -1
	for _, marker := range order {
		idx := strings.Index(out, marker)
		require.NotEqual(t, -1, idx, marker)
		assert.Greater(t, idx, last, marker)
		last = idx
	}
}

func TestNotFound(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "es")
	var sb strings.Builder
	require.NoError(t, NotFound("es", content.For("es")).Render(ctx, &sb))

	out := sb.String()
	assert.Contains(t, out, `<meta name="robots" content="noindex, nofollow">`)
	assert.Contains(t, out, `<html lang="es">`)
}

func TestStructuredData(t *testing.T) {
	d := landingData("en")
	lb, ok := d.StructuredData().(localBusiness)
	require.True(t, ok)
	assert.Equal(t, "+15550142290", lb.Telephone)
	assert.Equal(t, "https://harborline.example/", lb.URL)
	assert.Len(t, lb.AreaServed, 2)
}
