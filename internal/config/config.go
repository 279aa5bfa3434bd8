package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Upload settings
	UploadDir           string
	UploadBaseURL       string
	MaxImageSize        int64
	MaxImagesPerProject int
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	maxImageSize := int64(5 * 1024 * 1024)
	if sizeEnv := os.Getenv("MAX_IMAGE_SIZE"); sizeEnv != "" {
		val, err := strconv.ParseInt(sizeEnv, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_IMAGE_SIZE value: %v", err)
		}
		maxImageSize = val
	}
	maxImages := 5
	if imagesEnv := os.Getenv("MAX_IMAGES_PER_PROJECT"); imagesEnv != "" {
		val, err := strconv.Atoi(imagesEnv)
		if err == nil {
			maxImages = val
		}
	}
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	baseURL := os.Getenv("UPLOAD_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port + "/uploads/"
	}
	cfg := &Config{
		AppPort:    port,
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		UploadDir:           uploadDir,
		UploadBaseURL:       baseURL,
		MaxImageSize:        maxImageSize,
		MaxImagesPerProject: maxImages,
	}
	// Basic validation for required fields
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	return cfg, nil
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
