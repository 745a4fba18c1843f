package main

import (
	"context"
	"log"
	"time"

	"quizmaker/config"
	"quizmaker/exporters"
	"quizmaker/handlers"
	"quizmaker/middleware"
	"quizmaker/repository"
	"quizmaker/routes"
	"quizmaker/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Initialize storage
	var store repository.Store
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Println("Using in-memory store")
		store = repository.NewMemoryStore(cfg.MaxPageSize)
	case config.StorePostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := repository.Migrate(db); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		store = repository.NewGormStore(db, cfg.MaxPageSize)
	default:
		log.Fatalf("Unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Initialize export cache
	var cache services.ExportCache = services.NopExportCache{}
	if cfg.RedisEnabled {
		redisClient := config.InitRedis(cfg)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, export cache disabled: %v", err)
		} else {
			cache = services.NewRedisExportCache(redisClient, cfg.ExportCacheTTL)
		}
		cancel()
	}

	// Initialize services
	quizService := services.NewQuizService(store)
	questionService := services.NewQuestionService(store)
	exportService := services.NewExportService(quizService, exporters.Default(), cache)

	// Initialize handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	routes.SetupRoutes(router, quizHandler, questionHandler, exportHandler)

	// Start server
	log.Printf("Server starting on %s", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
