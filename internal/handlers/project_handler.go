package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"portfolio-service/internal/models"
	"portfolio-service/internal/services"
)

// ProjectHandler exposes project operations over HTTP. Every route is
// reachable both path-style (/projects/{id}/...) and query-style
// (?id=&action=&image_id=); both dispatch to the same service calls.
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         zerolog.Logger
}

func NewProjectHandler(projectService *services.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// Index lists projects, or dispatches the query-style variants.
// @Summary List projects
// @Description List projects with images, optionally filtered by category and paginated. With ?id= returns a single project, with ?action=featured the featured ones.
// @Tags projects
// @Produce json
// @Param category query string false "Category slug filter ('all' disables the filter)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} services.Result "Project list"
// @Router /projects [get]
func (h *ProjectHandler) Index(c *fiber.Ctx) error {
	if c.Query("action") == "featured" {
		return h.Featured(c)
	}
	if id, ok := queryID(c, "id"); ok {
		return respond(c, h.projectService.GetProject(id), fiber.StatusOK)
	}

	params := services.ListParams{
		Category: c.Query("category"),
		Limit:    c.QueryInt("limit", 0),
		Offset:   c.QueryInt("offset", 0),
	}
	return respond(c, h.projectService.GetAllProjects(params), fiber.StatusOK)
}

// Show returns a single project by path id.
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} services.Result "Project with images"
// @Failure 404 {object} services.Result "Project not found"
// @Router /projects/{id} [get]
func (h *ProjectHandler) Show(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.GetProject(id), fiber.StatusOK)
}

// Featured returns the featured projects.
// @Summary List featured projects
// @Tags projects
// @Produce json
// @Param limit query int false "Maximum number of projects" default(6)
// @Success 200 {object} services.Result "Featured projects"
// @Router /projects/featured [get]
func (h *ProjectHandler) Featured(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 6)
	return respond(c, h.projectService.GetFeaturedProjects(limit), fiber.StatusOK)
}

// Store creates a project, or dispatches the query-style update and
// add-images variants (POST with ?id= updates, matching the original
// API's POST-for-update-with-files behavior).
// @Summary Create a project
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param title formData string true "Project title"
// @Param category formData string true "Category slug"
// @Param images formData file false "Up to five image files"
// @Success 201 {object} services.Result "Created project"
// @Failure 400 {object} services.Result "Missing field or too many images"
// @Router /projects [post]
func (h *ProjectHandler) Store(c *fiber.Ctx) error {
	if id, ok := queryID(c, "id"); ok {
		if c.Query("action") == "images" {
			return respond(c, h.projectService.AddImages(id, h.files(c)), fiber.StatusCreated)
		}
		return respond(c, h.projectService.UpdateProject(id, h.input(c), h.files(c)), fiber.StatusOK)
	}
	return respond(c, h.projectService.CreateProject(h.input(c), h.files(c)), fiber.StatusCreated)
}

// Update modifies a project addressed by path id.
// @Summary Update a project
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} services.Result "Updated project"
// @Failure 404 {object} services.Result "Project not found"
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.UpdateProject(id, h.input(c), h.files(c)), fiber.StatusOK)
}

// UpdateFlat is the query-style update endpoint; the id is mandatory here.
func (h *ProjectHandler) UpdateFlat(c *fiber.Ctx) error {
	id, ok := queryID(c, "id")
	if !ok {
		return respond(c, &services.Result{Success: false, Message: "Project ID required", ErrorCode: 400}, fiber.StatusOK)
	}
	return respond(c, h.projectService.UpdateProject(id, h.input(c), h.files(c)), fiber.StatusOK)
}

// Destroy deletes a project addressed by path id.
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} services.Result "Project deleted"
// @Failure 404 {object} services.Result "Project not found"
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Destroy(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.DeleteProject(id), fiber.StatusOK)
}

// DestroyFlat is the query-style delete endpoint, covering both project
// deletion (?id=) and single image deletion (?action=image&image_id=).
func (h *ProjectHandler) DestroyFlat(c *fiber.Ctx) error {
	if c.Query("action") == "image" {
		if imageID, ok := queryID(c, "image_id"); ok {
			return respond(c, h.projectService.DeleteImage(imageID), fiber.StatusOK)
		}
	}
	if id, ok := queryID(c, "id"); ok {
		return respond(c, h.projectService.DeleteProject(id), fiber.StatusOK)
	}
	return respond(c, &services.Result{Success: false, Message: "Project ID required", ErrorCode: 400}, fiber.StatusOK)
}

// AddImages attaches uploaded images to an existing project.
// @Summary Add images to a project
// @Tags projects
// @Accept mpfd
// @Produce json
// @Param id path int true "Project ID"
// @Param images formData file true "Image files"
// @Success 201 {object} services.Result "Stored images"
// @Failure 400 {object} services.Result "No images or capacity exceeded"
// @Failure 404 {object} services.Result "Project not found"
// @Router /projects/{id}/images [post]
func (h *ProjectHandler) AddImages(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.AddImages(id, h.files(c)), fiber.StatusCreated)
}

// DeleteImage removes a single project image.
// @Summary Delete a project image
// @Tags projects
// @Produce json
// @Param imageId path int true "Image ID"
// @Success 200 {object} services.Result "Image deleted"
// @Failure 404 {object} services.Result "Image not found"
// @Router /projects/images/{imageId} [delete]
func (h *ProjectHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.DeleteImage(imageID), fiber.StatusOK)
}

// SetPrimaryImage flags an image as the project's primary one.
// @Summary Set the primary image
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Param imageId path int true "Image ID"
// @Success 200 {object} services.Result "Primary image set"
// @Router /projects/{id}/images/{imageId}/primary [put]
func (h *ProjectHandler) SetPrimaryImage(c *fiber.Ctx) error {
	projectID, ok := paramID(c, "id")
	if !ok {
		return routeNotFound(c)
	}
	imageID, ok := paramID(c, "imageId")
	if !ok {
		return routeNotFound(c)
	}
	return respond(c, h.projectService.SetPrimaryImage(projectID, imageID), fiber.StatusOK)
}

// input parses the request body (JSON or form) leniently; an unparseable
// body behaves like an empty one.
func (h *ProjectHandler) input(c *fiber.Ctx) models.ProjectInput {
	var input models.ProjectInput
	if err := c.BodyParser(&input); err != nil {
		h.logger.Debug().Err(err).Msg("unparseable project payload")
	}
	return input
}

// files extracts the uploaded image files, if any.
func (h *ProjectHandler) files(c *fiber.Ctx) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File["images"]
}

// paramID parses a numeric path segment; a non-numeric segment means the
// route does not exist.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// queryID parses an optional numeric query parameter.
func queryID(c *fiber.Ctx, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
