package repository

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio-service/internal/models"
)

func TestCategoryTableName(t *testing.T) {
	db := newTestDB(t)

	assert.True(t, db.Migrator().HasTable("project_categories"))
	assert.False(t, db.Migrator().HasTable("categories"))
}

func TestCategoryCreatePersistsInactive(t *testing.T) {
	r := NewCategoryRepository(newTestDB(t))

	created := models.Category{Name: "Retired", Slug: "retired", IsActive: false}
	require.NoError(t, r.Create(&created))

	category, err := r.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, category.IsActive)
}

func TestCategoryActiveListing(t *testing.T) {
	r := NewCategoryRepository(newTestDB(t))

	require.NoError(t, r.Create(&models.Category{Name: "Residential", Slug: "residential", DisplayOrder: 2, IsActive: true}))
	require.NoError(t, r.Create(&models.Category{Name: "Commercial", Slug: "commercial", DisplayOrder: 1, IsActive: true}))
	require.NoError(t, r.Create(&models.Category{Name: "Retired", Slug: "retired", DisplayOrder: 0, IsActive: false}))

	categories, err := r.GetAll()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "commercial", categories[0].Slug)
	assert.Equal(t, "residential", categories[1].Slug)
}

func TestCategoryGetBySlug(t *testing.T) {
	r := NewCategoryRepository(newTestDB(t))

	require.NoError(t, r.Create(&models.Category{Name: "Commercial", Slug: "commercial", IsActive: true}))
	require.NoError(t, r.Create(&models.Category{Name: "Retired", Slug: "retired", IsActive: false}))

	category, err := r.GetBySlug("commercial")
	require.NoError(t, err)
	assert.Equal(t, "Commercial", category.Name)

	// Inactive categories are hidden from slug lookup.
	_, err = r.GetBySlug("retired")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = r.GetBySlug("missing")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	r := NewCategoryRepository(newTestDB(t))

	category := models.Category{Name: "Industrial", Slug: "industrial", IsActive: true}
	require.NoError(t, r.Create(&category))

	category.Description = "Factories and plants"
	require.NoError(t, r.Update(&category))

	loaded, err := r.GetByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Factories and plants", loaded.Description)

	require.NoError(t, r.Delete(category.ID))
	_, err = r.GetByID(category.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
