package models

// ProjectImage is one of the (at most five) images owned by a project.
// Exactly one image per project is flagged primary once any exist.
type ProjectImage struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	ProjectID    uint   `json:"project_id" gorm:"not null;index"`
	ImagePath    string `json:"image_path" gorm:"size:255"`
	ImageName    string `json:"image_name" gorm:"size:255"`
	OriginalName string `json:"original_name" gorm:"size:255"`
	IsPrimary    bool   `json:"is_primary" gorm:"default:false"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`

	// ImageURL is computed from the configured upload base URL, never stored.
	ImageURL string `json:"image_url" gorm:"-"`
}

// UploadedImage is the per-file receipt returned by image upload operations.
type UploadedImage struct {
	ID       uint   `json:"id"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
