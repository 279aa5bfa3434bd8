package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"portfolio-service/internal/services"
)

// HealthHandler reports API liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check answers the health probe.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} services.Result "API status"
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	database := "disconnected"
	if sqlDB, err := h.db.DB(); err == nil && sqlDB.Ping() == nil {
		database = "connected"
	}
	return c.JSON(services.Result{
		Success: true,
		Message: "API is running",
		Data: fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Format("2006-01-02 15:04:05"),
			"database":  database,
		},
	})
}
