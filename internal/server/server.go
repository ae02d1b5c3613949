// Package server assembles the Fiber application: middleware, documentation,
// metrics and the API routes.
package server

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/handlers"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/middleware"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
	"gorm.io/gorm"

	_ "github.com/localnerve/jam-build-bookmarks/docs/api" // Swagger docs
)

// Options are the dependencies of the application
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	Log    logger.Logger
	Auth   *services.Authenticator
}

// New builds the Fiber app with every route registered
func New(opts Options) *fiber.App {
	cfg := opts.Config
	auth := opts.Auth
	if auth == nil {
		auth = services.NewAuthenticator(cfg)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.NewErrorHandler(opts.Log),
		DisableStartupMessage: cfg.IsTest(),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	if !cfg.IsTest() {
		// Bodies are not logged, they carry passwords
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "${time} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(compress.New())

	// Prometheus metrics. Collectors register globally, so only one app per process may enable this.
	if cfg.Metrics {
		prometheus := fiberprometheus.New("bookmarks")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), cfg, opts.DB, "")
		if !result.Healthy() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(result)
		}
		return c.JSON(result)
	})

	registerRoutes(app.Group("/api"), opts.DB, auth)

	app.Use(handlers.UnknownEndpoint)

	return app
}

func registerRoutes(api fiber.Router, db *gorm.DB, auth *services.Authenticator) {
	requireToken := middleware.RequireToken(auth)

	bookmarks := &handlers.BookmarkHandler{DB: db}
	users := &handlers.UserHandler{DB: db}
	login := &handlers.LoginHandler{DB: db, Auth: auth}

	api.Get("/bookmarks", bookmarks.ListBookmarks)
	api.Get("/bookmarks/:id", bookmarks.GetBookmark)
	api.Post("/bookmarks", requireToken, bookmarks.CreateBookmark)
	api.Delete("/bookmarks/:id", requireToken, bookmarks.DeleteBookmark)
	api.Put("/bookmarks/:id/toggleLike", requireToken, bookmarks.ToggleLike)

	api.Get("/users", users.ListUsers)
	api.Get("/users/:id", users.GetUser)
	api.Post("/users", users.CreateUser)
	api.Delete("/users/:id", requireToken, users.DeleteUser)

	api.Post("/login", login.Login)
}
