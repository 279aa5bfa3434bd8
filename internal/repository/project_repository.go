package repository

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"portfolio-service/internal/errs"
	"portfolio-service/internal/models"
)

// ProjectRepository provides methods to interact with the projects and
// project_images tables.
type ProjectRepository struct {
	db        *gorm.DB
	imagesDir string
	imagesURL string
	maxImages int
}

// NewProjectRepository creates a new ProjectRepository. imagesDir is the
// directory holding project image files, imagesURL the public URL prefix
// those files are served under.
func NewProjectRepository(db *gorm.DB, imagesDir, imagesURL string, maxImages int) *ProjectRepository {
	return &ProjectRepository{
		db:        db,
		imagesDir: imagesDir,
		imagesURL: imagesURL,
		maxImages: maxImages,
	}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *ProjectRepository) WithTx(tx *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db:        tx,
		imagesDir: r.imagesDir,
		imagesURL: r.imagesURL,
		maxImages: r.maxImages,
	}
}

// GetAll retrieves projects with their images, optionally filtered by
// category and paginated. Ordering is display_order ASC, created_at DESC.
func (r *ProjectRepository) GetAll(category string, limit, offset int) ([]models.Project, error) {
	var projects []models.Project

	q := r.db.Model(&models.Project{})
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	q = q.Order("display_order ASC, created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	err := q.Preload("Images", imageOrder).Find(&projects).Error
	if err != nil {
		return nil, err
	}
	for i := range projects {
		r.hydrateImages(&projects[i])
	}
	return projects, nil
}

// Count returns the number of projects matching the category filter.
func (r *ProjectRepository) Count(category string) (int64, error) {
	var count int64
	q := r.db.Model(&models.Project{})
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	err := q.Count(&count).Error
	return count, err
}

// GetByID retrieves a project by its ID with images.
func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Images", imageOrder).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	r.hydrateImages(&project)
	return &project, nil
}

// GetFeatured retrieves featured projects, at most limit of them.
func (r *ProjectRepository) GetFeatured(limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("featured = ?", true).
		Order("display_order ASC, created_at DESC").
		Limit(limit).
		Preload("Images", imageOrder).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	for i := range projects {
		r.hydrateImages(&projects[i])
	}
	return projects, nil
}

// Create inserts a new project and fills in its generated ID.
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update persists the full field set of an existing project.
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Omit("Images").Save(project).Error
}

// Delete removes a project, its image rows, and the backing files.
// File removal is best-effort: a missing file does not stop the delete.
func (r *ProjectRepository) Delete(id uint) error {
	images, err := r.GetImages(id)
	if err != nil {
		return errors.Wrap(err, "failed to load project images")
	}
	for _, img := range images {
		os.Remove(filepath.Join(r.imagesDir, img.ImageName))
	}
	if err := r.db.Where("project_id = ?", id).Delete(&models.ProjectImage{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// GetImages retrieves a project's images ordered primary-first, then by
// display order.
func (r *ProjectRepository) GetImages(projectID uint) ([]models.ProjectImage, error) {
	var images []models.ProjectImage
	err := r.db.Where("project_id = ?", projectID).
		Order("is_primary DESC, display_order ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	for i := range images {
		images[i].ImageURL = r.imagesURL + images[i].ImageName
	}
	return images, nil
}

// ImageCount returns the number of images a project currently owns.
func (r *ProjectRepository) ImageCount(projectID uint) (int, error) {
	var count int64
	err := r.db.Model(&models.ProjectImage{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return int(count), err
}

// AddImage attaches an uploaded image to a project. The first image of a
// project is always primary; marking a later image primary clears the
// flag on its siblings first.
func (r *ProjectRepository) AddImage(projectID uint, imagePath, imageName, originalName string, isPrimary bool) (uint, error) {
	count, err := r.ImageCount(projectID)
	if err != nil {
		return 0, err
	}
	if count >= r.maxImages {
		return 0, &errs.CapacityError{Limit: r.maxImages}
	}

	if count == 0 {
		isPrimary = true
	}
	if isPrimary {
		if err := r.clearPrimary(projectID); err != nil {
			return 0, errors.Wrap(err, "failed to clear primary images")
		}
	}

	image := models.ProjectImage{
		ProjectID:    projectID,
		ImagePath:    imagePath,
		ImageName:    imageName,
		OriginalName: originalName,
		IsPrimary:    isPrimary,
		DisplayOrder: count + 1,
	}
	if err := r.db.Create(&image).Error; err != nil {
		return 0, err
	}
	return image.ID, nil
}

// DeleteImage removes an image row and its backing file. Returns false
// when no such image exists. A failed file unlink does not block the
// row deletion.
func (r *ProjectRepository) DeleteImage(imageID uint) (bool, error) {
	var image models.ProjectImage
	err := r.db.First(&image, "id = ?", imageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	os.Remove(filepath.Join(r.imagesDir, image.ImageName))

	if err := r.db.Delete(&models.ProjectImage{}, "id = ?", imageID).Error; err != nil {
		return false, err
	}
	return true, nil
}

// SetPrimaryImage clears the primary flag on all of the project's images
// and sets it on the given image.
func (r *ProjectRepository) SetPrimaryImage(projectID, imageID uint) error {
	if err := r.clearPrimary(projectID); err != nil {
		return err
	}
	return r.db.Model(&models.ProjectImage{}).
		Where("id = ?", imageID).
		Update("is_primary", true).Error
}

func (r *ProjectRepository) clearPrimary(projectID uint) error {
	return r.db.Model(&models.ProjectImage{}).
		Where("project_id = ?", projectID).
		Update("is_primary", false).Error
}

// hydrateImages fills computed URLs and normalizes a nil image slice so
// the JSON shape is stable.
func (r *ProjectRepository) hydrateImages(project *models.Project) {
	if project.Images == nil {
		project.Images = []models.ProjectImage{}
	}
	for i := range project.Images {
		project.Images[i].ImageURL = r.imagesURL + project.Images[i].ImageName
	}
}

func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("is_primary DESC, display_order ASC")
}
