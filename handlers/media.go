package handlers

import (
	"errors"
	"net/http"

	"warehouse_landing_go/services"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MediaHandler streams images from the storage provider under /media/*.
func MediaHandler(c echo.Context) error {
	key, err := services.CleanMediaKey(c.Param("*"))
	if err != nil || services.Storage == nil {
		return echo.NewHTTPError(http.StatusNotFound, "media not found")
	}

	body, contentType, err := services.Storage.Get(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, services.ErrMediaNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "media not found")
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to read media")
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load media")
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, contentType, body)
}
