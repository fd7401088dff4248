package main

import (
	"os"
	"os/signal"
	"syscall"

	"toko/internal/config"
	"toko/internal/database"
	"toko/internal/repositories"
	"toko/internal/services"
	"toko/internal/storage"
	applog "toko/pkg/logger"
	"toko/pkg/rabbitmq"

	"github.com/rs/zerolog/log"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()
	applog.Setup(cfg.LogLevel, cfg.LogPretty)

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access database handle")
	}
	defer sqlDB.Close()

	// --- Storage ---
	store, err := storage.NewDisk(cfg.StorageRoot)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare storage")
	}

	// --- Product events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, store, publisher)

	app := newApp(appDeps{
		db:                db,
		products:          productService,
		storage:           store,
		sessionExpiration: cfg.SessionExpiration,
		accessLog:         true,
	})

	// --- Start HTTP Server ---
	log.Info().Str("port", cfg.AppPort).Str("driver", cfg.DBDriver).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during Fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
