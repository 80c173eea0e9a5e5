package partials

import (
	"context"
	"testing"

	"warehouse_landing_go/models"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/i18n"

	"github.com/stretchr/testify/assert"
)

func TestMapTrackingID(t *testing.T) {
	loc := models.LocationAddress{Name: "Harborline  North"}
	assert.Equal(t, "location-comparison-map-1-harborline-north", mapTrackingID(1, loc))
}

func TestFieldWidth(t *testing.T) {
	assert.Equal(t, "half", fieldWidth(models.FormField{Name: "email", Type: models.FieldTypeEmail}))
	assert.Equal(t, "full", fieldWidth(models.FormField{Name: "additionalNotes", Type: models.FieldTypeTextarea}))
}

func TestOrDefault(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "en")
	assert.Equal(t, "Our Gallery", orDefault(ctx, "Our Gallery", "gallery.title"))
	assert.Equal(t, i18n.T(ctx, "gallery.title"), orDefault(ctx, "", "gallery.title"))
}

func TestSubmitLabel(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "en")
	c := &models.WarehouseContent{}
	c.CTAs.Primary.Text = "Request Pricing"

	assert.Equal(t, "Request Pricing", submitLabel(ctx, c, services.LeadFormView{Status: services.StatusIdle}))
	assert.Equal(t, "Submitting...", submitLabel(ctx, c, services.LeadFormView{Status: services.StatusSubmitting}))
}
