package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitrine/vitrine-backend/config"
	"github.com/vitrine/vitrine-backend/internal/app/controller"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/repository"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/db"
	"github.com/vitrine/vitrine-backend/internal/middleware"
	"github.com/vitrine/vitrine-backend/internal/router"
	"github.com/vitrine/vitrine-backend/internal/scheduler"
	"github.com/vitrine/vitrine-backend/internal/storage"
	"github.com/vitrine/vitrine-backend/pkg/logger"
	"github.com/vitrine/vitrine-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Vitrine Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// File URLs are derived from this prefix on every load
	model.SetFileBaseURL(cfg.App.FileBaseURL)

	// Initialize Redis (optional, token blacklist is skipped without it)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	fileRepo := repository.NewFileRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	segmentRepo := repository.NewSegmentRepository(db.GetDB())
	businessRepo := repository.NewBusinessRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	userService := service.NewUserService(userRepo, cfg.App.ResetPassword)
	avatarService := service.NewAvatarService(db.GetDB(), userRepo, fileRepo)
	segmentService := service.NewSegmentService(segmentRepo)
	businessService := service.NewBusinessService(
		db.GetDB(),
		businessRepo,
		userRepo,
		segmentRepo,
		fileRepo,
		addressRepo,
	)
	categoryService := service.NewCategoryService(categoryRepo, businessRepo)
	productService := service.NewProductService(
		db.GetDB(),
		productRepo,
		businessRepo,
		categoryRepo,
		fileRepo,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.TokenExpiry)
	userController := controller.NewUserController(userService)
	fileController := controller.NewFileController(avatarService, s3Storage)
	segmentController := controller.NewSegmentController(segmentService)
	businessController := controller.NewBusinessController(businessService, s3Storage)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService, s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start the orphan file sweeper
	fileSweeper := scheduler.NewFileSweeper(fileRepo)
	if err := fileSweeper.Start(); err != nil {
		logger.Error("Failed to start file sweeper", err)
	}
	defer fileSweeper.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		userController,
		fileController,
		segmentController,
		businessController,
		categoryController,
		productController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
