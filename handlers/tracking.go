package handlers

import (
	"net/http"

	"warehouse_landing_go/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// TrackClickRequest is the body app.js posts for every tagged click.
type TrackClickRequest struct {
	ButtonID string `json:"button_id" validate:"required,max=120"`
	Timezone string `json:"timezone" validate:"max=64"`
	ClientIP string `json:"client_ip" validate:"omitempty,ip"`
}

// TrackClickHandler hands the click to the beacon and returns immediately.
// The beacon's outcome is never reported to the browser.
func TrackClickHandler(c echo.Context) error {
	var req TrackClickRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid click event")
	}

	services.Tracker.Track(req.ButtonID, req.Timezone, services.ResolverFor(c.RealIP(), req.ClientIP))
	return c.NoContent(http.StatusAccepted)
}
