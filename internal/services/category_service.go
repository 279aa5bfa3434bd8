package services

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"portfolio-service/internal/models"
	"portfolio-service/internal/repository"
)

// CategoryService handles business logic for project categories.
type CategoryService struct {
	repo   *repository.CategoryRepository
	logger zerolog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo *repository.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// GetAllCategories lists the active categories.
func (s *CategoryService) GetAllCategories() *Result {
	categories, err := s.repo.GetAll()
	if err != nil {
		return fail(500, err.Error())
	}
	return &Result{
		Success: true,
		Data:    categories,
		Count:   intPtr(len(categories)),
	}
}

// GetCategoryBySlug returns a single active category.
func (s *CategoryService) GetCategoryBySlug(slug string) *Result {
	category, err := s.repo.GetBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Category not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}
	return &Result{Success: true, Data: category}
}

// CreateCategory creates a category, deriving the slug from the name
// when the caller did not supply one.
func (s *CategoryService) CreateCategory(input models.CategoryInput) *Result {
	if input.Name == nil || *input.Name == "" {
		return fail(400, "Category name is required")
	}

	category := models.Category{
		Name:     sanitizeText(*input.Name),
		IsActive: true,
	}
	if input.Slug != nil && *input.Slug != "" {
		category.Slug = sanitizeText(*input.Slug)
	} else {
		category.Slug = GenerateSlug(category.Name)
	}
	if input.Description != nil {
		category.Description = sanitizeText(*input.Description)
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Create(&category); err != nil {
		s.logger.Error().Err(err).Msg("category create failed")
		return fail(500, "Failed to create category")
	}

	created, err := s.repo.GetByID(category.ID)
	if err != nil {
		return fail(500, err.Error())
	}
	return ok("Category created successfully", created)
}

// UpdateCategory merges the supplied fields over an existing category.
func (s *CategoryService) UpdateCategory(id uint, input models.CategoryInput) *Result {
	existing, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Category not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}

	category := *existing
	if input.Name != nil {
		category.Name = sanitizeText(*input.Name)
	}
	if input.Slug != nil && *input.Slug != "" {
		category.Slug = sanitizeText(*input.Slug)
	}
	if input.Description != nil {
		category.Description = sanitizeText(*input.Description)
	}
	if input.DisplayOrder != nil {
		category.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.Update(&category); err != nil {
		s.logger.Error().Err(err).Uint("category_id", id).Msg("category update failed")
		return fail(500, "Failed to update category")
	}
	return ok("Category updated successfully", &category)
}

// DeleteCategory removes a category by id.
func (s *CategoryService) DeleteCategory(id uint) *Result {
	_, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(404, "Category not found")
	}
	if err != nil {
		return fail(500, err.Error())
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error().Err(err).Uint("category_id", id).Msg("category delete failed")
		return fail(500, "Failed to delete category")
	}
	return ok("Category deleted successfully", nil)
}
