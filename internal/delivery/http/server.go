package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/maskmap-service/internal/config"
	"github.com/maskmap-service/internal/delivery/http/handler"
	"github.com/maskmap-service/internal/delivery/http/middleware"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server is the Fiber HTTP server for the mask map API.
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	areaHandler     *handler.AreaHandler
	pharmacyHandler *handler.PharmacyHandler
	mapHandler      *handler.MapHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	areaHandler *handler.AreaHandler,
	pharmacyHandler *handler.PharmacyHandler,
	mapHandler *handler.MapHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Mask Map Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		areaHandler:     areaHandler,
		pharmacyHandler: pharmacyHandler,
		mapHandler:      mapHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Area routes
	api.Get("/areas/cities", s.areaHandler.GetCities)
	api.Get("/areas/districts", s.areaHandler.GetDistricts)
	api.Get("/areas/selection", s.areaHandler.GetSelection)
	api.Put("/areas/selection", s.areaHandler.UpdateSelection)
	api.Post("/areas/refresh", s.areaHandler.Refresh)

	// Pharmacy routes
	api.Get("/pharmacies", s.pharmacyHandler.List)
	api.Put("/pharmacies/keyword", s.pharmacyHandler.UpdateKeyword)
	api.Get("/pharmacies/nearby", s.pharmacyHandler.Nearby)
	api.Post("/pharmacies/refresh", s.pharmacyHandler.Refresh)
	api.Post("/pharmacies/close", s.pharmacyHandler.Close)
	api.Get("/pharmacies/:id", s.pharmacyHandler.Get)
	api.Post("/pharmacies/:id/open", s.pharmacyHandler.Open)

	// Map routes
	api.Get("/map/markers", s.mapHandler.GetMarkers)
	api.Get("/map/viewport", s.mapHandler.GetViewport)
	api.Post("/map/markers/:id/popup", s.mapHandler.TriggerPopup)
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
