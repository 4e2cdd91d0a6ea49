package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/frontandrew/rental/internal/delivery/http"
	"github.com/frontandrew/rental/internal/infrastructure/renderer"
	"github.com/frontandrew/rental/internal/pkg/config"
	"github.com/frontandrew/rental/internal/pkg/database"
	"github.com/frontandrew/rental/internal/pkg/logger"
	redisPkg "github.com/frontandrew/rental/internal/pkg/redis"
	"github.com/frontandrew/rental/internal/repository/cached"
	"github.com/frontandrew/rental/internal/repository/postgres"
	redisRepo "github.com/frontandrew/rental/internal/repository/redis"
	"github.com/frontandrew/rental/internal/usecase/draft"
	"github.com/frontandrew/rental/internal/usecase/gallery"
	"github.com/frontandrew/rental/internal/usecase/inventory"
	"github.com/frontandrew/rental/internal/usecase/quote"
	"github.com/frontandrew/rental/internal/usecase/settings"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting rental quotes API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// Подключение к PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Failed to ensure database schema", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// =========================================================================
	// Подключение к Redis
	// =========================================================================

	cache, err := redisPkg.NewClient(redisPkg.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cache.Close()

	log.Info("Connected to Redis", map[string]interface{}{
		"host": cfg.Redis.Host,
		"port": cfg.Redis.Port,
	})

	// =========================================================================
	// Создание repositories
	// =========================================================================

	vehicleRepo := postgres.NewVehicleRepository(db)
	quoteRepo := postgres.NewQuoteRepository(db)
	mediaRepo := postgres.NewMediaRepository(db)
	settingsRepo := cached.NewSettingsRepository(postgres.NewSettingsRepository(db), cache)
	draftRepo := redisRepo.NewDraftRepository(cache)
	stateRepo := redisRepo.NewStateRepository(cache)

	log.Info("Repositories initialized")

	// =========================================================================
	// Создание клиента сервиса рендеринга
	// =========================================================================

	rendererClient := renderer.NewHTTPClient(cfg.Renderer.ServiceURL, cfg.Renderer.Timeout)

	if err := rendererClient.Health(ctx); err != nil {
		log.Warn("Renderer service is not available", map[string]interface{}{
			"error": err.Error(),
			"url":   cfg.Renderer.ServiceURL,
		})
		log.Warn("Quotes will be saved without PDF and image artifacts")
	} else {
		log.Info("Renderer service is healthy", map[string]interface{}{
			"url": cfg.Renderer.ServiceURL,
		})
	}

	// =========================================================================
	// Создание use case services
	// =========================================================================

	inventoryService := inventory.NewService(vehicleRepo, log)
	galleryService := gallery.NewService(mediaRepo, vehicleRepo, log)
	settingsService := settings.NewService(settingsRepo, log)
	draftService := draft.NewService(draftRepo, vehicleRepo, settingsRepo, stateRepo, log)
	quoteService := quote.NewService(quoteRepo, draftRepo, settingsRepo, stateRepo, rendererClient, log)

	// Начальное наполнение каталога
	if err := inventoryService.EnsureSeed(ctx); err != nil {
		log.Fatal("Failed to seed vehicle catalog", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers
	// =========================================================================

	inventoryHandler := deliveryHTTP.NewInventoryHandler(inventoryService, log)
	galleryHandler := deliveryHTTP.NewGalleryHandler(galleryService, log)
	draftHandler := deliveryHTTP.NewDraftHandler(draftService, log)
	quoteHandler := deliveryHTTP.NewQuoteHandler(quoteService, log)
	settingsHandler := deliveryHTTP.NewSettingsHandler(settingsService, log)

	log.Info("HTTP handlers initialized")

	// =========================================================================
	// Создание и настройка HTTP router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		inventoryHandler,
		galleryHandler,
		draftHandler,
		quoteHandler,
		settingsHandler,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		// Даем серверу 30 секунд на graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
