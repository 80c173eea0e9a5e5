package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"warehouse_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
)

type SitemapLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type SitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq string        `xml:"changefreq,omitempty"`
	Priority   float32       `xml:"priority,omitempty"`
	Links      []SitemapLink `xml:"xhtml:link"`
}

type SitemapURLSet struct {
	XMLName    string       `xml:"urlset"`
	Xmlns      string       `xml:"xmlns,attr"`
	XmlnsXHTML string       `xml:"xmlns:xhtml,attr"`
	URLs       []SitemapURL `xml:"url"`
}

// GetSitemapHandler lists the landing page once per language, each entry
// carrying hreflang links to every translation.
func GetSitemapHandler(c echo.Context) error {
	baseURL := strings.TrimSuffix(getConfig(c).AppURL, "/")

	locURL := func(lang string) string {
		if lang == i18n.Default() {
			return baseURL + "/"
		}
		return baseURL + "/?lang=" + lang
	}

	links := make([]SitemapLink, 0, len(i18n.SupportedLanguages))
	for _, lang := range i18n.SupportedLanguages {
		links = append(links, SitemapLink{Rel: "alternate", Hreflang: lang, Href: locURL(lang)})
	}

	urls := make([]SitemapURL, 0, len(i18n.SupportedLanguages))
	for _, lang := range i18n.SupportedLanguages {
		priority := float32(0.9)
		if lang == i18n.Default() {
			priority = 1.0
		}
		urls = append(urls, SitemapURL{Loc: locURL(lang), ChangeFreq: "weekly", Priority: priority, Links: links})
	}

	urlSet := SitemapURLSet{
		Xmlns:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		XmlnsXHTML: "http://www.w3.org/1999/xhtml",
		URLs:       urls,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationXML)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(c.Response().Writer)
	encoder.Indent("", "  ")
	return encoder.Encode(urlSet)
}

// RobotsHandler allows everything and points crawlers at the sitemap.
func RobotsHandler(c echo.Context) error {
	baseURL := strings.TrimSuffix(getConfig(c).AppURL, "/")
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: "+baseURL+"/sitemap.xml\n")
}

// HealthHandler is the liveness check.
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
