package models

import "time"

// Completion statuses a project can be in.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusUpcoming   = "upcoming"
)

// Project represents a single entry of the construction portfolio.
type Project struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title" gorm:"size:255;not null"`
	Description      string         `json:"description" gorm:"type:text"`
	Category         string         `json:"category" gorm:"size:100;not null;default:residential;index"`
	ClientName       string         `json:"client_name" gorm:"size:255"`
	Location         string         `json:"location" gorm:"size:255"`
	ProjectDate      string         `json:"project_date" gorm:"size:50"`
	CompletionStatus string         `json:"completion_status" gorm:"size:20;default:completed;index"`
	Featured         bool           `json:"featured" gorm:"default:false;index"`
	DisplayOrder     int            `json:"display_order" gorm:"default:0"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	Images           []ProjectImage `json:"images" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// ProjectInput carries the writable project fields of a create or
// update request. Nil pointers mean the caller omitted the field.
type ProjectInput struct {
	Title            *string `json:"title" form:"title"`
	Description      *string `json:"description" form:"description"`
	Category         *string `json:"category" form:"category"`
	ClientName       *string `json:"client_name" form:"client_name"`
	Location         *string `json:"location" form:"location"`
	ProjectDate      *string `json:"project_date" form:"project_date"`
	CompletionStatus *string `json:"completion_status" form:"completion_status" validate:"omitempty,oneof=completed in_progress upcoming"`
	Featured         *bool   `json:"featured" form:"featured"`
	DisplayOrder     *int    `json:"display_order" form:"display_order"`
}
