package main

import (
	"time"

	"toko/internal/handlers"
	"toko/internal/services"
	"toko/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// maxBodySize leaves room above the image limit so oversized uploads reach validation.
const maxBodySize = 16 * 1024 * 1024

// appDeps are the collaborators the HTTP application is built from.
type appDeps struct {
	db                *gorm.DB
	products          *services.ProductService
	storage           *storage.FileStorage
	sessionExpiration time.Duration
	accessLog         bool
}

// newApp builds the Fiber application with middleware and routes.
func newApp(deps appDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    maxBodySize,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if deps.accessLog {
		app.Use(logger.New())
	}

	// Public storage, e.g. /storage/products/<image>.
	app.Use("/storage", filesystem.New(filesystem.Config{
		Root: deps.storage.HTTPFileSystem(),
	}))

	sessions := session.New(session.Config{
		Expiration: deps.sessionExpiration,
	})
	productHandler := handlers.NewProductHandler(deps.products, handlers.NewFlash(sessions))
	productHandler.RegisterRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := deps.db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": err.Error(),
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
