package pages

import (
	"context"

	"warehouse_landing_go/middleware"
	"warehouse_landing_go/models"
	"warehouse_landing_go/services"

	"github.com/a-h/templ"
)

// LandingData is everything the landing page needs for one render.
type LandingData struct {
	Lang      string
	Content   *models.WarehouseContent
	SEO       *models.SEO
	Form      services.LeadFormView
	CSRFToken string
	Year      int
}

// localBusiness is the schema.org payload embedded in the page head.
type localBusiness struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Image       string   `json:"image,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Address     string   `json:"address,omitempty"`
	OpeningHrs  string   `json:"openingHours,omitempty"`
	AreaServed  []string `json:"areaServed,omitempty"`
}

// StructuredData builds the LocalBusiness JSON-LD for the page.
func (d LandingData) StructuredData() interface{} {
	c := d.Content
	lb := localBusiness{
		Context:     "https://schema.org",
		Type:        "LocalBusiness",
		Name:        c.Brand.Name,
		Description: c.SEO.Description,
		Telephone:   c.Contact.DialablePhone(),
		Email:       c.Contact.Email,
		Address:     c.Contact.Address,
		OpeningHrs:  c.Contact.Hours,
	}
	if d.SEO != nil {
		lb.URL = d.SEO.Canonical
		lb.Image = d.SEO.OGImage
	}
	for _, loc := range c.Locations.Addresses {
		lb.AreaServed = append(lb.AreaServed, loc.Address)
	}
	return lb
}

// notFoundSEO keeps error pages out of the index.
func notFoundSEO(lang string, c *models.WarehouseContent) *models.SEO {
	seo := models.DefaultSEO(c.Brand.Name, c.SEO.Description).WithNoIndex()
	seo.Locale = lang
	return seo
}

// assetURL is the cache-busted path of a file under /static.
func assetURL(ctx context.Context, asset string) templ.SafeURL {
	return templ.URL("/static/" + asset + "?v=" + middleware.GetAssetVersion(ctx, asset))
}
