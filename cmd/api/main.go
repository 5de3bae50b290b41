package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tradebridge/internal/config"
	"tradebridge/internal/database"
	"tradebridge/internal/middleware"
	"tradebridge/internal/modules/auth"
	"tradebridge/internal/modules/booking"
	"tradebridge/internal/modules/catalog"
	"tradebridge/internal/modules/collection"
	"tradebridge/internal/modules/notification"
	"tradebridge/internal/modules/payment"
	"tradebridge/internal/modules/review"
	"tradebridge/internal/pkg/jwt"
	"tradebridge/internal/pkg/qr"
	"tradebridge/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Shared infrastructure
	jwtService := jwt.New(cfg.JWTSecret, cfg.AccessTokenTTL)
	qrRenderer := qr.NewRenderer()
	hub := notification.NewHub()

	// Services
	notificationService := notification.NewService(notificationRepo, hub)
	authService := auth.NewService(userRepo, jwtService)
	catalogService := catalog.NewService(productRepo)
	bookingService := booking.NewService(bookingRepo, productRepo, notificationService)
	collectionService := collection.NewService(bookingRepo, bookingService, notificationService, qrRenderer, cfg.QRSigningSecret, cfg.CollectTokenTTL)
	paymentService := payment.NewService(bookingService)
	reviewService := review.NewService(reviewRepo, bookingRepo)

	// Handlers
	authHandler := auth.NewHandler(authService)
	catalogHandler := catalog.NewHandler(catalogService)
	bookingHandler := booking.NewHandler(bookingService)
	collectionHandler := collection.NewHandler(collectionService)
	paymentHandler := payment.NewHandler(paymentService)
	reviewHandler := review.NewHandler(reviewService)
	notificationHandler := notification.NewHandler(notificationService, hub)

	router := gin.Default()
	router.Use(middleware.ErrorLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(api)
		catalogHandler.RegisterPublicRoutes(api)
		reviewHandler.RegisterPublicRoutes(api)

		protected := api.Group("")
		protected.Use(middleware.Auth(jwtService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			collectionHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
