package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/ebralte/campground-api/backend/internal/handlers"
	"github.com/ebralte/campground-api/backend/internal/middleware"
	"github.com/ebralte/campground-api/backend/internal/models"
	"github.com/ebralte/campground-api/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	mongoDB := mgClient.Database("campground")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	campsiteRepo := repositories.NewMongoCampsiteRepository(mongoDB)
	favoriteRepo := repositories.NewMongoFavoriteRepository(mongoDB)
	promotionRepo := repositories.NewMongoPromotionRepository(mongoDB)

	// --- Unprotected routes for authentication ---
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(e.Group("/auth"))
	log.Println("Auth routes configured.")

	// User profile routes (require authentication)
	userGroup := e.Group("/users")
	userGroup.Use(middleware.RequireUser())
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(userGroup)
	log.Println("User profile routes configured.")

	// Campsite routes (gates declared per route)
	campsiteHandler := handlers.NewCampsiteHandler(campsiteRepo, userRepo)
	campsiteHandler.RegisterCampsiteRoutes(e.Group("/campsites"))
	log.Println("Campsite routes configured.")

	// Favorite routes
	favoriteHandler := handlers.NewFavoriteHandler(favoriteRepo, campsiteRepo, userRepo)
	favoriteHandler.RegisterFavoriteRoutes(e.Group("/favorites"))
	log.Println("Favorite routes configured.")

	// Promotion routes
	promotionHandler := handlers.NewPromotionHandler(promotionRepo)
	promotionHandler.RegisterPromotionRoutes(e.Group("/promotions"))
	log.Println("Promotion routes configured.")

	log.Println("All routes configured.")
}
