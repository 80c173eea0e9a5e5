package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSEOFromContent(t *testing.T) {
	c := &WarehouseContent{
		Brand: Brand{Name: "Harborline"},
		SEO: ContentSEO{
			Title:       "Warehouse Space",
			Description: "Space for lease",
			Keywords:    "warehouse",
			OGImage:     "/media/banner.jpg",
		},
	}

	s := SEOFromContent(c, "https://example.com/")
	assert.Equal(t, "Warehouse Space", s.GetOGTitle())
	assert.Equal(t, "Space for lease", s.GetOGDesc())
	assert.Equal(t, "https://example.com/", s.Canonical)
	assert.Equal(t, "https://example.com/media/banner.jpg", s.OGImage)
	assert.Equal(t, "Harborline", s.SiteName)

	s.WithLocale("es", "en")
	assert.Equal(t, "es_US", s.OGLocale())
	assert.Equal(t, []string{"en"}, s.AltLocales)
}

func TestSEOAbsoluteImageKept(t *testing.T) {
	c := &WarehouseContent{SEO: ContentSEO{OGImage: "https://cdn.example.com/a.jpg"}}
	assert.Equal(t, "https://cdn.example.com/a.jpg", SEOFromContent(c, "https://example.com").OGImage)
}
