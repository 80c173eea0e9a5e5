package handlers

import (
	"warehouse_landing_go/models"
	"warehouse_landing_go/services/i18n"
)

// GetSEO returns the landing page metadata for lang, with the other
// supported language as the hreflang alternate.
func GetSEO(c *models.WarehouseContent, lang, appURL string) *models.SEO {
	return models.SEOFromContent(c, appURL).WithLocale(lang, i18n.Other(lang))
}
