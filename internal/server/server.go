package server

import (
	"rich-notes-be/internal/bootstrap"
	"rich-notes-be/internal/config"
	"rich-notes-be/internal/pkg/serverutils"
	"rich-notes-be/internal/repository/contract"

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
		BodyLimit:             2 * 1024 * 1024, // 2MB
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware; a no-op until a provider is installed.
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(
		serverutils.ErrorStatus{Err: contract.ErrNoteNotFound, Code: fiber.StatusNotFound},
	))

	registerRoutes(app, container)

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
	s.container.Logger.Info("Server", "Server is running", map[string]interface{}{
		"address": "http://localhost:" + s.cfg.App.Port,
		"store":   s.cfg.Database.Driver,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	api := app.Group("/api")

	c.NoteController.RegisterRoutes(api)
	c.NotesSocketHandler.RegisterRoutes(api)
}
