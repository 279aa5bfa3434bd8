package main

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"portfolio-service/internal/config"
	"portfolio-service/internal/handlers"
	"portfolio-service/internal/metrics"
	"portfolio-service/internal/models"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/services"
	"portfolio-service/internal/storage"
)

func main() {
	godotenv.Load()
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := InitConfig(logger)
	db := ConnectDatabase(cfg, logger)
	MigrateDatabase(db, logger)

	imagesDir := filepath.Join(cfg.UploadDir, "projects")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create upload directory")
	}

	collector := metrics.NewCollector()
	uploader := storage.NewImageUploader(cfg.UploadDir, cfg.UploadBaseURL, cfg.MaxImageSize, collector)

	projectRepo := repository.NewProjectRepository(db, imagesDir, cfg.UploadBaseURL+"projects/", cfg.MaxImagesPerProject)
	categoryRepo := repository.NewCategoryRepository(db)

	projectService := services.NewProjectService(db, projectRepo, uploader, cfg.MaxImagesPerProject, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)

	app := fiber.New(fiber.Config{
		BodyLimit:    int(cfg.MaxImageSize) * (cfg.MaxImagesPerProject + 1),
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(handlers.CORS())
	app.Use(fiberlogger.New())
	app.Use(collector.Middleware())

	// Uploaded images are served straight from disk
	app.Static("/uploads", cfg.UploadDir)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/api/swagger/*", swagger.HandlerDefault)

	projectHandler := handlers.NewProjectHandler(projectService, logger)
	categoryHandler := handlers.NewCategoryHandler(categoryService, logger)
	healthHandler := handlers.NewHealthHandler(db)
	handlers.SetupRoutes(app, projectHandler, categoryHandler, healthHandler)

	logger.Info().Str("port", cfg.AppPort).Msg("server listening")
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func InitConfig(logger zerolog.Logger) *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config, logger zerolog.Logger) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	return db
}

func MigrateDatabase(db *gorm.DB, logger zerolog.Logger) {
	err := db.AutoMigrate(&models.Project{}, &models.ProjectImage{}, &models.Category{})
	if err != nil {
		logger.Fatal().Err(err).Msg("database migration failed")
	}
}
