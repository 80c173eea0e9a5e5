package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse_landing_go/config"
	"warehouse_landing_go/handlers"
	"warehouse_landing_go/middleware"
	"warehouse_landing_go/services"
	"warehouse_landing_go/services/content"
	"warehouse_landing_go/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()
	services.InitLogger(cfg)

	// Translations and page content are embedded; failing to parse them is fatal
	if err := i18n.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load translations")
	}
	i18n.SetDefault(cfg.DefaultLanguage)
	if err := content.Load(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load site content")
	}

	// Outbound services
	services.InitializeStorage(cfg)
	services.InitLeadClient(cfg)
	services.InitIPResolver(cfg)
	services.InitTracker(cfg, services.IPResolver)
	if cfg.APIHost == "" {
		log.Warn().Msg("LANDING_API_HOST not set, lead submissions will fail")
	}

	middleware.InitAssetVersions("static")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(middleware.CSPNonce(middleware.CSPSources{
		Img:     []string{cfg.R2PublicURL},
		Connect: cfg.IPLookupServices,
	}))

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSRF(cfg))

	// Static files
	e.Static("/static", "static")
	e.GET("/media/*", handlers.MediaHandler)

	// Pages
	e.GET("/", handlers.LandingHandler)
	e.GET("/sitemap.xml", handlers.GetSitemapHandler)
	e.GET("/robots.txt", handlers.RobotsHandler)
	e.GET("/healthz", handlers.HealthHandler)

	// Form and beacon endpoints
	e.POST("/leads", handlers.LeadPostHandler)
	e.POST("/track", handlers.TrackClickHandler)

	e.RouteNotFound("/*", handlers.NotFoundHandler)

	// Start server
	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("env", cfg.Environment).Msg("Server starting")
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
