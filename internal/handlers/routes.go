package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"portfolio-service/internal/services"
)

// SetupRoutes registers the API route table. Registration order matters
// for the projects tree: the literal segments (featured, images) must
// precede the :id parameter routes.
func SetupRoutes(app *fiber.App, projects *ProjectHandler, categories *CategoryHandler, health *HealthHandler) {
	api := app.Group("/api")

	api.Get("/health", health.Check)

	api.Get("/projects", projects.Index)
	api.Post("/projects", projects.Store)
	api.Put("/projects", projects.UpdateFlat)
	api.Delete("/projects", projects.DestroyFlat)
	api.Get("/projects/featured", projects.Featured)
	api.Delete("/projects/images/:imageId", projects.DeleteImage)
	api.Get("/projects/:id", projects.Show)
	api.Put("/projects/:id", projects.Update)
	// POST allowed for update so multipart clients can send new images
	api.Post("/projects/:id", projects.Update)
	api.Delete("/projects/:id", projects.Destroy)
	api.Post("/projects/:id/images", projects.AddImages)
	api.Put("/projects/:id/images/:imageId/primary", projects.SetPrimaryImage)

	api.Get("/categories", categories.Index)
	api.Post("/categories", categories.Store)
	api.Get("/categories/:slug", categories.Show)
	api.Put("/categories/:id", categories.Update)
	api.Delete("/categories/:id", categories.Delete)

	// Unmatched methods on recognized paths answer 405, anything else 404.
	api.All("/projects", methodNotAllowed)
	api.All("/projects/featured", methodNotAllowed)
	api.All("/projects/images/:imageId", methodNotAllowed)
	api.All("/projects/:id", methodNotAllowed)
	api.All("/projects/:id/images", methodNotAllowed)
	api.All("/projects/:id/images/:imageId/primary", methodNotAllowed)
	api.All("/categories", methodNotAllowed)
	api.All("/categories/:slug", methodNotAllowed)
	app.Use(routeNotFound)
}

// CORS allows all origins and answers preflight requests with 200 and an
// empty body.
func CORS() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Set("Access-Control-Max-Age", "86400")
		if c.Method() == fiber.MethodOptions {
			// SendStatus would write "OK" as the body.
			return c.Status(fiber.StatusOK).Send(nil)
		}
		return c.Next()
	}
}

// ErrorHandler turns errors escaping the handlers (including the
// router's 405s) into the standard response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	message := err.Error()
	if code == fiber.StatusMethodNotAllowed {
		message = "Method not allowed"
	}
	return c.Status(code).JSON(services.Result{
		Success:   false,
		Message:   message,
		ErrorCode: code,
	})
}

// respond serializes a service result, mirroring its error code onto the
// HTTP status.
func respond(c *fiber.Ctx, result *services.Result, successStatus int) error {
	status := successStatus
	if !result.Success {
		status = result.ErrorCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
	}
	return c.Status(status).JSON(result)
}

func methodNotAllowed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusMethodNotAllowed).JSON(services.Result{
		Success:   false,
		Message:   "Method not allowed",
		ErrorCode: fiber.StatusMethodNotAllowed,
	})
}

func routeNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(services.Result{
		Success:   false,
		Message:   "Route not found",
		ErrorCode: fiber.StatusNotFound,
	})
}
