package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipevault/backend/config"
	"github.com/recipevault/backend/internal/database"
	"github.com/recipevault/backend/internal/router"
	"github.com/recipevault/backend/internal/server"
	"github.com/recipevault/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Rate limiting degrades away when Redis is unreachable
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	var imageStore service.ImageStore
	switch cfg.StorageDriver {
	case "s3":
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		imageStore = service.NewS3ImageStore(s3Config)
	default:
		imageStore = service.NewLocalImageStore(cfg.UploadDir, cfg.BaseURL)
	}

	srv := server.New(cfg, router.Setup(cfg, db, redisClient, imageStore))

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s...", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
