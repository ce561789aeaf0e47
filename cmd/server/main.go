package main // Entry point package

import (
	"context" // Context for startup deadlines
	"log"     // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-catalog/internal/catalog"    // Screen mutation engine
	"github.com/iliyamo/movie-catalog/internal/config"     // Internal config loader
	"github.com/iliyamo/movie-catalog/internal/database"   // MySQL connection helper
	"github.com/iliyamo/movie-catalog/internal/handler"    // HTTP handlers
	"github.com/iliyamo/movie-catalog/internal/middleware" // Cache and rate-limit middleware
	"github.com/iliyamo/movie-catalog/internal/queue"      // Catalog event consumer
	"github.com/iliyamo/movie-catalog/internal/repository" // Aggregate store
	"github.com/iliyamo/movie-catalog/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/movie-catalog/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil { // Load .env when present
		log.Println("no .env file found, relying on the environment")
	}
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Connect to MySQL
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(context.Background(), db); err != nil { // Create the movies table if missing
		log.Fatalf("database schema failed: %v", err)
	}

	rdb := config.NewRedisClient() // May be nil; cache and limiter degrade gracefully
	if rdb == nil {
		log.Println("redis unavailable, caching and rate limiting disabled")
	}

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	store := repository.NewMovieRepo(db) // Aggregate store over the movies table
	h := handler.NewCatalogHandler(store, catalog.NewService(store), handler.NewValidator(), queue_publisher.PublishCatalogUpdated)
	router.RegisterRoutes(e, h) // Register application routes

	go func() { // Audit consumer runs for the lifetime of the process
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("catalog consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
