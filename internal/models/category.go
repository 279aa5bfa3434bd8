package models

// Category groups projects under a URL-safe slug. Inactive categories
// are hidden from listings and slug lookups but keep their rows.
type Category struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"size:100;not null;uniqueIndex"`
	Slug         string `json:"slug" gorm:"size:100;not null;uniqueIndex"`
	Description  string `json:"description" gorm:"type:text"`
	DisplayOrder int    `json:"display_order" gorm:"default:0"`
	// No default tag: gorm would drop a false value from the INSERT,
	// making inactive rows impossible to create. CategoryService owns
	// the active-by-default rule.
	IsActive bool `json:"is_active"`
}

func (Category) TableName() string {
	return "project_categories"
}

// CategoryInput carries the writable category fields of a create or
// update request. Nil pointers mean the caller omitted the field.
type CategoryInput struct {
	Name         *string `json:"name" form:"name"`
	Slug         *string `json:"slug" form:"slug"`
	Description  *string `json:"description" form:"description"`
	DisplayOrder *int    `json:"display_order" form:"display_order"`
	IsActive     *bool   `json:"is_active" form:"is_active"`
}
