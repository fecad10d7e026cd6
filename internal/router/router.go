package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recipevault/backend/config"
	"github.com/recipevault/backend/internal/api"
	"github.com/recipevault/backend/internal/middleware"
	"github.com/recipevault/backend/internal/service"
)

// Setup configures the application routes
func Setup(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, imageStore service.ImageStore) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	// Health check endpoint (no auth required)
	router.GET("/health", api.HealthCheck)

	// Locally stored recipe images are served straight from disk
	if cfg.StorageDriver == "local" {
		router.Static("/media", cfg.UploadDir)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	tagService := service.NewTagService(db)
	ingredientService := service.NewIngredientService(db)
	recipeService := service.NewRecipeService(db)

	userHandler := api.NewUserHandler(authService)
	tagHandler := api.NewTagHandler(tagService)
	ingredientHandler := api.NewIngredientHandler(ingredientService)
	recipeHandler := api.NewRecipeHandler(recipeService, imageStore)

	// Mutations are throttled per user when Redis is around; without it
	// the API still serves, just unthrottled.
	var writeLimit gin.HandlerFunc
	if redisClient != nil {
		writeLimit = middleware.NewWriteRateLimiter(redisClient).RateLimitMiddleware()
	}

	v1 := router.Group("/api/v1")
	userHandler.RegisterRoutes(v1)

	recipe := v1.Group("/recipe")
	recipe.Use(middleware.AuthMiddleware(authService))
	{
		tagHandler.RegisterRoutes(recipe)
		ingredientHandler.RegisterRoutes(recipe)
		recipeHandler.RegisterRoutes(recipe, writeLimit)
	}

	return router
}
