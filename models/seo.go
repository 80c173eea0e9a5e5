package models

import "strings"

// SEO contains metadata for search engine optimization and social sharing
type SEO struct {
	Title       string
	Description string // 150-160 chars recommended
	Keywords    string // comma-separated
	Canonical   string
	OGTitle     string // defaults to Title
	OGDesc      string // defaults to Description
	OGImage     string
	OGType      string
	TwitterCard string
	NoIndex     bool
	Locale      string
	AltLocales  []string // hreflang alternates
	SiteName    string
}

// DefaultSEO returns SEO with sensible defaults
func DefaultSEO(title, description string) *SEO {
	return &SEO{
		Title:       title,
		Description: description,
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "en",
		AltLocales:  []string{"es"},
	}
}

// SEOFromContent builds page metadata from the content's seo block.
// Relative image paths are made absolute against baseURL.
func SEOFromContent(c *WarehouseContent, baseURL string) *SEO {
	s := DefaultSEO(c.SEO.Title, c.SEO.Description).
		WithKeywords(c.SEO.Keywords).
		WithCanonical(strings.TrimSuffix(baseURL, "/") + "/")
	s.SiteName = c.Brand.Name
	if img := c.SEO.OGImage; img != "" {
		if strings.HasPrefix(img, "/") {
			img = strings.TrimSuffix(baseURL, "/") + img
		}
		s.WithOGImage(img)
	}
	return s
}

// WithCanonical sets the canonical URL
func (s *SEO) WithCanonical(url string) *SEO {
	s.Canonical = url
	return s
}

// WithOGImage sets the Open Graph image
func (s *SEO) WithOGImage(imageURL string) *SEO {
	s.OGImage = imageURL
	return s
}

// WithKeywords sets meta keywords
func (s *SEO) WithKeywords(keywords string) *SEO {
	s.Keywords = keywords
	return s
}

// WithLocale sets the current locale and alternative locales
func (s *SEO) WithLocale(locale string, altLocales ...string) *SEO {
	s.Locale = locale
	s.AltLocales = altLocales
	return s
}

// WithNoIndex sets the noindex directive
func (s *SEO) WithNoIndex() *SEO {
	s.NoIndex = true
	return s
}

// GetOGTitle returns OGTitle or falls back to Title
func (s *SEO) GetOGTitle() string {
	if s.OGTitle != "" {
		return s.OGTitle
	}
	return s.Title
}

// GetOGDesc returns OGDesc or falls back to Description
func (s *SEO) GetOGDesc() string {
	if s.OGDesc != "" {
		return s.OGDesc
	}
	return s.Description
}

// OGLocale maps the page language to an Open Graph locale.
func (s *SEO) OGLocale() string {
	switch s.Locale {
	case "es":
		return "es_US"
	default:
		return "en_US"
	}
}
