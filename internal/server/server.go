package server

import (
	"log"

	"iomd-notebook-be/internal/bootstrap"
	"iomd-notebook-be/internal/config"
	"iomd-notebook-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		// Leave headroom over the file size cap for the multipart
		// envelope and metadata part.
		BodyLimit: cfg.Limits.MaxFileSize + 1*1024*1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-CSRFToken",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	// Editor pages may never be framed; the eval frame page is only
	// embeddable by the editor origin.
	app.Use(serverutils.FrameOptionsMiddleware(cfg.App.SiteURL))
	if cfg.EvalFrameIsolated() {
		app.Use(serverutils.EvalFrameOriginMiddleware(cfg.App.EvalFrameOrigin))
	}

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	csrf := serverutils.EnsureCSRFCookie(c.Redis)

	c.RenderController.RegisterRoutes(app)
	c.NotebookController.RegisterRoutes(app, csrf)
	c.FileController.RegisterRoutes(app)
	c.FileSourceController.RegisterRoutes(app)
}
