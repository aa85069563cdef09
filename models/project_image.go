package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectImage is one image of a project; Image is the opaque storage reference
type ProjectImage struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index:idx_project_image_project_id"`
	Image     string    `json:"image" db:"image" gorm:"type:text;not null"`
}

func (i *ProjectImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
