package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"portfolio-service/internal/models"
	"portfolio-service/internal/services"
)

// CategoryHandler exposes category operations over HTTP.
type CategoryHandler struct {
	categoryService *services.CategoryService
	logger          zerolog.Logger
}

func NewCategoryHandler(categoryService *services.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// Index lists the active categories; with ?slug= it returns a single one.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} services.Result "Active categories"
// @Router /categories [get]
func (h *CategoryHandler) Index(c *fiber.Ctx) error {
	if slug := c.Query("slug"); slug != "" {
		return respond(c, h.categoryService.GetCategoryBySlug(slug), fiber.StatusOK)
	}
	return respond(c, h.categoryService.GetAllCategories(), fiber.StatusOK)
}

// Show returns a single active category by slug.
// @Summary Get a category by slug
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Success 200 {object} services.Result "Category"
// @Failure 404 {object} services.Result "Category not found"
// @Router /categories/{slug} [get]
func (h *CategoryHandler) Show(c *fiber.Ctx) error {
	return respond(c, h.categoryService.GetCategoryBySlug(c.Params("slug")), fiber.StatusOK)
}

// Store creates a category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryInput true "Category data"
// @Success 201 {object} services.Result "Created category"
// @Failure 400 {object} services.Result "Missing name"
// @Router /categories [post]
func (h *CategoryHandler) Store(c *fiber.Ctx) error {
	return respond(c, h.categoryService.CreateCategory(h.input(c)), fiber.StatusCreated)
}

// Update modifies a category addressed by id.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} services.Result "Updated category"
// @Failure 404 {object} services.Result "Category not found"
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.categoryService.UpdateCategory(id, h.input(c)), fiber.StatusOK)
}

// Delete removes a category addressed by id.
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} services.Result "Category deleted"
// @Failure 404 {object} services.Result "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.categoryService.DeleteCategory(id), fiber.StatusOK)
}

func (h *CategoryHandler) input(c *fiber.Ctx) models.CategoryInput {
	var input models.CategoryInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Debug().Err(err).Msg("unparseable category payload")
	}
	return input
}
