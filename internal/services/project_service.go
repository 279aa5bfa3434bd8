package services

import (
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"portfolio-service/internal/models"
	"portfolio-service/internal/repository"
	"portfolio-service/internal/storage"
)

// Uploader stores validated image uploads. Satisfied by storage.ImageUploader.
type Uploader interface {
	Upload(file *multipart.FileHeader, folder string) (*storage.UploadedFile, error)
	Delete(filename, folder string) bool
}

const projectImagesFolder = "projects"

// ListParams are the query parameters accepted by project listings.
type ListParams struct {
	Category string
	Limit    int
	Offset   int
}

// ProjectService orchestrates the project repository and the image
// uploader. Writes that touch multiple rows run inside one transaction;
// file moves performed during that transaction are not rolled back with it.
type ProjectService struct {
	db        *gorm.DB
	repo      *repository.ProjectRepository
	uploader  Uploader
	maxImages int
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *gorm.DB, repo *repository.ProjectRepository, uploader Uploader, maxImages int, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		db:        db,
		repo:      repo,
		uploader:  uploader,
		maxImages: maxImages,
		validate:  validator.New(),
		logger:    logger,
	}
}

// GetAllProjects lists projects with total and page counts.
func (s *ProjectService) GetAllProjects(params ListParams) *Result {
	projects, err := s.repo.GetAll(params.Category, params.Limit, params.Offset)
	if err != nil {
		return fail(500, err.Error())
	}
	total, err := s.repo.Count(params.Category)
	if err != nil {
		return fail(500, err.Error())
	}
	return &Result{
		Success: true,
		Data:    projects,
		Total:   intPtr(int(total)),
		Count:   intPtr(len(projects)),
	}
}

// GetProject returns a single hydrated project.
func (s *ProjectService) GetProject(id uint) *Result {
	project, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Project not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}
	return &Result{Success: true, Data: project}
}

// GetFeaturedProjects returns up to limit featured projects.
func (s *ProjectService) GetFeaturedProjects(limit int) *Result {
	projects, err := s.repo.GetFeatured(limit)
	if err != nil {
		return fail(500, err.Error())
	}
	return &Result{
		Success: true,
		Data:    projects,
		Count:   intPtr(len(projects)),
	}
}

// CreateProject validates the input, creates the project row and attaches
// any uploaded images, all inside one transaction.
func (s *ProjectService) CreateProject(input models.ProjectInput, files []*multipart.FileHeader) *Result {
	if input.Title == nil || *input.Title == "" {
		return fail(400, "Project title is required")
	}
	if input.Category == nil || *input.Category == "" {
		return fail(400, "Project category is required")
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(400, "Invalid completion status")
	}
	if len(files) > s.maxImages {
		return fail(400, fmt.Sprintf("Maximum %d images allowed per project", s.maxImages))
	}

	project := models.Project{
		Title:            sanitizeText(*input.Title),
		Category:         sanitizeText(*input.Category),
		CompletionStatus: models.StatusCompleted,
	}
	if input.Description != nil {
		project.Description = sanitizeText(*input.Description)
	}
	if input.ClientName != nil {
		project.ClientName = sanitizeText(*input.ClientName)
	}
	if input.Location != nil {
		project.Location = sanitizeText(*input.Location)
	}
	if input.ProjectDate != nil {
		project.ProjectDate = *input.ProjectDate
	}
	if input.CompletionStatus != nil && *input.CompletionStatus != "" {
		project.CompletionStatus = *input.CompletionStatus
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.DisplayOrder != nil {
		project.DisplayOrder = *input.DisplayOrder
	}

	var uploaded []models.UploadedImage
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Create(&project); err != nil {
			return errors.Wrap(err, "failed to create project")
		}
		var err error
		uploaded, err = s.uploadProjectImages(txRepo, project.ID, files)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("project create failed")
		return fail(500, err.Error())
	}

	created, err := s.repo.GetByID(project.ID)
	if err != nil {
		return fail(500, err.Error())
	}
	res := ok("Project created successfully", created)
	res.UploadedImages = intPtr(len(uploaded))
	return res
}

// UpdateProject merges the supplied fields over the existing row; omitted
// fields keep their previous values. New images are attached within the
// same transaction as the row update.
func (s *ProjectService) UpdateProject(id uint, input models.ProjectInput, files []*multipart.FileHeader) *Result {
	existing, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Project not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}

	if len(files) > 0 {
		current, err := s.repo.ImageCount(id)
		if err != nil {
			return fail(500, err.Error())
		}
		if current+len(files) > s.maxImages {
			return fail(400, fmt.Sprintf("Maximum %d images allowed. Current: %d", s.maxImages, current))
		}
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(400, "Invalid completion status")
	}

	project := *existing
	project.Images = nil
	if input.Title != nil {
		project.Title = sanitizeText(*input.Title)
	}
	if input.Description != nil {
		project.Description = sanitizeText(*input.Description)
	}
	if input.Category != nil {
		project.Category = sanitizeText(*input.Category)
	}
	if input.ClientName != nil {
		project.ClientName = sanitizeText(*input.ClientName)
	}
	if input.Location != nil {
		project.Location = sanitizeText(*input.Location)
	}
	if input.ProjectDate != nil {
		project.ProjectDate = *input.ProjectDate
	}
	if input.CompletionStatus != nil && *input.CompletionStatus != "" {
		project.CompletionStatus = *input.CompletionStatus
	}
	if input.Featured != nil {
		project.Featured = *input.Featured
	}
	if input.DisplayOrder != nil {
		project.DisplayOrder = *input.DisplayOrder
	}

	var uploaded []models.UploadedImage
	err = s.db.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.Update(&project); err != nil {
			return errors.Wrap(err, "failed to update project")
		}
		var err error
		uploaded, err = s.uploadProjectImages(txRepo, id, files)
		return err
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("project_id", id).Msg("project update failed")
		return fail(500, err.Error())
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		return fail(500, err.Error())
	}
	res := ok("Project updated successfully", updated)
	res.UploadedImages = intPtr(len(uploaded))
	return res
}

// DeleteProject removes a project together with its image rows and files.
func (s *ProjectService) DeleteProject(id uint) *Result {
	_, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Project not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error().Err(err).Uint("project_id", id).Msg("project delete failed")
		return fail(500, "Failed to delete project")
	}
	return ok("Project deleted successfully", nil)
}

// AddImages attaches uploaded images to an existing project. A single
// file failing validation is skipped, not fatal to the batch.
func (s *ProjectService) AddImages(projectID uint, files []*multipart.FileHeader) *Result {
	_, err := s.repo.GetByID(projectID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Project not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}

	if len(files) == 0 {
		return fail(400, "No images provided")
	}

	current, err := s.repo.ImageCount(projectID)
	if err != nil {
		return fail(500, err.Error())
	}
	if current+len(files) > s.maxImages {
		return fail(400, fmt.Sprintf("Maximum %d images allowed. Current: %d, Attempting to add: %d",
			s.maxImages, current, len(files)))
	}

	uploaded, err := s.uploadProjectImages(s.repo, projectID, files)
	if err != nil {
		s.logger.Error().Err(err).Uint("project_id", projectID).Msg("image attach failed")
		return fail(500, err.Error())
	}
	return ok(fmt.Sprintf("%d image(s) uploaded successfully", len(uploaded)), uploaded)
}

// DeleteImage removes a single image row and its backing file.
func (s *ProjectService) DeleteImage(imageID uint) *Result {
	deleted, err := s.repo.DeleteImage(imageID)
	if err != nil {
		return fail(500, err.Error())
	}
	if !deleted {
		return fail(404, "Failed to delete image or image not found")
	}
	return ok("Image deleted successfully", nil)
}

// SetPrimaryImage makes the given image the project's primary one. The
// image id is not checked for ownership beyond the update's WHERE clause.
func (s *ProjectService) SetPrimaryImage(projectID, imageID uint) *Result {
	if err := s.repo.SetPrimaryImage(projectID, imageID); err != nil {
		return fail(500, "Failed to set primary image")
	}
	return ok("Primary image set successfully", nil)
}

// uploadProjectImages stores each file and records it against the
// project. Upload failures are skipped; a rejected database insert
// aborts the batch.
func (s *ProjectService) uploadProjectImages(repo *repository.ProjectRepository, projectID uint, files []*multipart.FileHeader) ([]models.UploadedImage, error) {
	uploaded := make([]models.UploadedImage, 0, len(files))

	for i, file := range files {
		stored, err := s.uploader.Upload(file, projectImagesFolder)
		if err != nil {
			s.logger.Warn().Err(err).Str("file", file.Filename).Msg("skipping image upload")
			continue
		}

		count, err := repo.ImageCount(projectID)
		if err != nil {
			return uploaded, err
		}
		isPrimary := i == 0 && count == 0

		imageID, err := repo.AddImage(projectID, stored.Path, stored.Filename, stored.OriginalName, isPrimary)
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, models.UploadedImage{
			ID:       imageID,
			Filename: stored.Filename,
			URL:      stored.URL,
		})
	}

	return uploaded, nil
}
