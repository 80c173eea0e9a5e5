package handlers

import (
	"net/http"
	"time"

	"warehouse_landing_go/middleware"
	"warehouse_landing_go/models"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/content"
	"warehouse_landing_go/services/i18n"
	"warehouse_landing_go/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// LandingHandler renders the single-page site in the negotiated language.
func LandingHandler(c echo.Context) error {
	lang := middleware.GetLocale(c)
	cont := content.For(lang)

	form := newLeadForm(c, cont, lang, "")
	defer form.Close()

	view := form.View()
	if c.QueryParam(SubmittedParam) == "1" {
		view.Status = services.StatusSubmitted
		view.ShowSuccess = true
	}
	return render(c, http.StatusOK, landingPage(c, lang, cont, view))
}

// NotFoundHandler renders the 404 page for unknown routes.
func NotFoundHandler(c echo.Context) error {
	lang := middleware.GetLocale(c)
	return render(c, http.StatusNotFound, pages.NotFound(lang, content.For(lang)))
}

func landingPage(c echo.Context, lang string, cont *models.WarehouseContent, view services.LeadFormView) templ.Component {
	cfg := getConfig(c)
	return pages.Landing(pages.LandingData{
		Lang:      lang,
		Content:   cont,
		SEO:       GetSEO(cont, lang, cfg.AppURL),
		Form:      view,
		CSRFToken: middleware.GetCSRFToken(c),
		Year:      time.Now().Year(),
	})
}

// newLeadForm wires a form for this request: the configured CRM client and
// an address chain that tries the request's own IP, then the one app.js
// reported.
func newLeadForm(c echo.Context, cont *models.WarehouseContent, lang, reportedAddr string) *services.LeadForm {
	cfg := getConfig(c)
	opts := services.LeadFormOptions{
		ClientID:  cfg.ClientID,
		Resolver:  services.ResolverFor(c.RealIP(), reportedAddr),
		Localizer: i18n.Localizer{Lang: lang},
	}
	if services.Leads != nil {
		opts.Submitter = services.Leads
	}
	return services.NewLeadForm(cont.LeadForm.Fields, opts)
}
