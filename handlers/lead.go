package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"warehouse_landing_go/middleware"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/content"
	"warehouse_landing_go/templates/partials"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SubmittedParam marks the landing page request that follows a successful
// plain form post, so the success banner shows after the redirect.
const SubmittedParam = "submitted"

// SubmittedRedirect is where a successful plain form post lands.
const SubmittedRedirect = "/?" + SubmittedParam + "=1#contact"

// LeadPostHandler validates and submits the lead form.
//
// Fetch requests (HX-Request: true) get the form fragment back. A plain form
// post that succeeds is redirected to the landing page so a reload cannot
// resend it; one that fails gets the whole page with the form errors. Status
// codes: 200 submitted, 422 invalid fields, 409 already submitting, 502 the
// CRM rejected or could not be reached.
func LeadPostHandler(c echo.Context) error {
	lang := middleware.GetLocale(c)
	cont := content.For(lang)

	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
	}

	form := newLeadForm(c, cont, lang, params.Get("client_ip"))
	defer form.Close()

	for _, field := range cont.LeadForm.Fields {
		form.SetValue(field.Name, params.Get(field.Name))
	}

	width, _ := strconv.Atoi(strings.TrimSpace(params.Get("viewport_width")))
	hints := services.ClientHints{
		UserAgent:     c.Request().UserAgent(),
		ViewportWidth: width,
		Timezone:      params.Get("timezone"),
	}

	status := http.StatusOK
	if err := form.Submit(c.Request().Context(), hints); err != nil {
		switch {
		case errors.Is(err, services.ErrValidationFailed):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, services.ErrSubmissionInFlight):
			status = http.StatusConflict
		default:
			status = http.StatusBadGateway
			log.Warn().Err(err).Str("form_id", form.ID).Msg("Lead not accepted by CRM")
		}
	}

	view := form.View()
	if isHTMX(c) {
		return render(c, status, partials.LeadForm(cont, view, middleware.GetCSRFToken(c)))
	}
	if status == http.StatusOK {
		return c.Redirect(http.StatusSeeOther, SubmittedRedirect)
	}
	return render(c, status, landingPage(c, lang, cont, view))
}
