package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio-service/internal/errs"
	"portfolio-service/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Project{}, &models.ProjectImage{}, &models.Category{}))
	return db
}

func newTestRepo(t *testing.T) (*ProjectRepository, string) {
	t.Helper()
	dir := t.TempDir()
	return NewProjectRepository(newTestDB(t), dir, "http://localhost:8080/uploads/projects/", 5), dir
}

func createProject(t *testing.T, r *ProjectRepository, p models.Project) uint {
	t.Helper()
	if p.Title == "" {
		p.Title = "Test Project"
	}
	if p.Category == "" {
		p.Category = "residential"
	}
	if p.CompletionStatus == "" {
		p.CompletionStatus = models.StatusCompleted
	}
	require.NoError(t, r.Create(&p))
	return p.ID
}

func TestAddImageCapacity(t *testing.T) {
	r, _ := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	for i := 0; i < 5; i++ {
		_, err := r.AddImage(id, fmt.Sprintf("projects/img%d.jpg", i), fmt.Sprintf("img%d.jpg", i), "orig.jpg", false)
		require.NoError(t, err)
	}

	_, err := r.AddImage(id, "projects/img6.jpg", "img6.jpg", "orig.jpg", false)
	require.Error(t, err)
	assert.True(t, errs.IsCapacity(err))

	count, err := r.ImageCount(id)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestAddImagePrimaryInvariant(t *testing.T) {
	r, _ := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	countPrimaries := func() int {
		images, err := r.GetImages(id)
		require.NoError(t, err)
		n := 0
		for _, img := range images {
			if img.IsPrimary {
				n++
			}
		}
		return n
	}

	// First image is forced primary even when not requested.
	firstID, err := r.AddImage(id, "projects/a.jpg", "a.jpg", "a.jpg", false)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaries())

	_, err = r.AddImage(id, "projects/b.jpg", "b.jpg", "b.jpg", false)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaries())

	images, err := r.GetImages(id)
	require.NoError(t, err)
	assert.Equal(t, firstID, images[0].ID)

	// Adding a primary image moves the flag, never duplicates it.
	thirdID, err := r.AddImage(id, "projects/c.jpg", "c.jpg", "c.jpg", true)
	require.NoError(t, err)
	assert.Equal(t, 1, countPrimaries())

	images, err = r.GetImages(id)
	require.NoError(t, err)
	assert.Equal(t, thirdID, images[0].ID)
}

func TestSetPrimaryImageOrdering(t *testing.T) {
	r, _ := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	var ids []uint
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		imgID, err := r.AddImage(id, "projects/"+name, name, name, false)
		require.NoError(t, err)
		ids = append(ids, imgID)
	}

	require.NoError(t, r.SetPrimaryImage(id, ids[2]))

	images, err := r.GetImages(id)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, ids[2], images[0].ID)
	assert.True(t, images[0].IsPrimary)
	assert.Equal(t, "http://localhost:8080/uploads/projects/c.jpg", images[0].ImageURL)
}

func TestDeleteProjectRemovesImagesAndFiles(t *testing.T) {
	r, dir := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	for _, name := range []string{"a.jpg", "b.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("img"), 0644))
		_, err := r.AddImage(id, "projects/"+name, name, name, false)
		require.NoError(t, err)
	}

	require.NoError(t, r.Delete(id))

	_, err := r.GetByID(id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	images, err := r.GetImages(id)
	require.NoError(t, err)
	assert.Empty(t, images)

	for _, name := range []string{"a.jpg", "b.jpg"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err))
	}
}

func TestDeleteImage(t *testing.T) {
	r, dir := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("img"), 0644))
	imgID, err := r.AddImage(id, "projects/a.jpg", "a.jpg", "a.jpg", false)
	require.NoError(t, err)

	deleted, err := r.DeleteImage(imgID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = os.Stat(filepath.Join(dir, "a.jpg"))
	assert.True(t, os.IsNotExist(err))

	deleted, err = r.DeleteImage(imgID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetAllFilterAndOrdering(t *testing.T) {
	r, _ := newTestRepo(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	createProject(t, r, models.Project{Title: "Office Tower", Category: "commercial", DisplayOrder: 2, CreatedAt: base})
	createProject(t, r, models.Project{Title: "Mall", Category: "commercial", DisplayOrder: 1, CreatedAt: base.Add(time.Hour)})
	createProject(t, r, models.Project{Title: "Warehouse", Category: "commercial", DisplayOrder: 1, CreatedAt: base.Add(2 * time.Hour)})
	createProject(t, r, models.Project{Title: "Villa", Category: "residential", DisplayOrder: 0, CreatedAt: base})

	projects, err := r.GetAll("commercial", 0, 0)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	// display_order ASC, then created_at DESC within equal orders
	assert.Equal(t, "Warehouse", projects[0].Title)
	assert.Equal(t, "Mall", projects[1].Title)
	assert.Equal(t, "Office Tower", projects[2].Title)

	count, err := r.Count("commercial")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	// The sentinel "all" disables the filter.
	projects, err = r.GetAll("all", 0, 0)
	require.NoError(t, err)
	assert.Len(t, projects, 4)

	// Pagination applies only when a limit is given.
	projects, err = r.GetAll("commercial", 2, 1)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Mall", projects[0].Title)
}

func TestGetFeatured(t *testing.T) {
	r, _ := newTestRepo(t)

	for i := 0; i < 8; i++ {
		createProject(t, r, models.Project{
			Title:        fmt.Sprintf("Project %d", i),
			Featured:     i%2 == 0,
			DisplayOrder: i,
		})
	}

	projects, err := r.GetFeatured(6)
	require.NoError(t, err)
	assert.Len(t, projects, 4)
	for _, p := range projects {
		assert.True(t, p.Featured)
	}

	projects, err = r.GetFeatured(2)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestGetByIDHydratesEmptyImages(t *testing.T) {
	r, _ := newTestRepo(t)
	id := createProject(t, r, models.Project{})

	project, err := r.GetByID(id)
	require.NoError(t, err)
	assert.NotNil(t, project.Images)
	assert.Empty(t, project.Images)
}
