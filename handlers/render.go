package handlers

import (
	"warehouse_landing_go/config"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// getConfig returns the config set on the context by the server middleware.
func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok {
		return cfg
	}
	return &config.Config{}
}

// render writes a templ component as an HTML response with the given status.
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// isHTMX reports whether the request came from an in-page fetch that only
// wants the fragment back.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
