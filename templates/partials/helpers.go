package partials

import (
	"context"
	"fmt"

	"warehouse_landing_go/models"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/i18n"

	"github.com/a-h/templ"
)

// navItem is one in-page anchor in the header navigation.
type navItem struct {
	ID  string
	Key string
}

// navItems lists the sections reachable from the header, in page order.
var navItems = []navItem{
	{ID: "home", Key: "nav.home"},
	{ID: "features", Key: "nav.features"},
	{ID: "locations", Key: "nav.locations"},
	{ID: "specifications", Key: "nav.specifications"},
	{ID: "gallery", Key: "nav.gallery"},
	{ID: "contact", Key: "nav.contact"},
}

// inputID is the DOM id of a lead form input.
func inputID(name string) string {
	return "lead-" + name
}

// fieldPlaceholder is the translated "Enter Email" style hint.
func fieldPlaceholder(ctx context.Context, f models.FormField) string {
	key := "form.enter"
	if f.Type == models.FieldTypeSelect {
		key = "form.select"
	}
	return i18n.T(ctx, key, map[string]interface{}{"label": f.Label})
}

// fieldWidth is "full" for inputs spanning both grid columns.
func fieldWidth(f models.FormField) string {
	if f.IsFullWidth() {
		return "full"
	}
	return "half"
}

// mapTrackingID identifies a location card's map link, e.g.
// location-comparison-map-0-harborline-north.
func mapTrackingID(index int, loc models.LocationAddress) string {
	return fmt.Sprintf("location-comparison-map-%d-%s", index, loc.TrackingSlug())
}

// orDefault falls back to a translation when the content leaves a title empty.
func orDefault(ctx context.Context, value, key string) string {
	if value != "" {
		return value
	}
	return i18n.T(ctx, key)
}

// otherLang is the language the header toggle switches to.
func otherLang(ctx context.Context) string {
	return i18n.Other(i18n.GetLocale(ctx))
}

func telHref(c *models.WarehouseContent) templ.SafeURL {
	return templ.URL("tel:" + c.Contact.DialablePhone())
}

// submitLabel swaps the call to action for a progress label mid-submit.
func submitLabel(ctx context.Context, c *models.WarehouseContent, view services.LeadFormView) string {
	if view.Submitting() {
		return i18n.T(ctx, "form.submitting")
	}
	return c.CTAs.Primary.Text
}

// lookupServices is the space separated list app.js queries for the
// visitor's public address.
func lookupServices() string {
	return services.BrowserLookupServicesAttr()
}
