package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
)

func (v Visibility) Valid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

type License string

const (
	LicenseAllRightsReserved License = "All Rights Reserved"
	LicenseCreativeCommons   License = "Creative Commons"
	LicenseMIT               License = "MIT"
)

func (l License) Valid() bool {
	switch l {
	case LicenseAllRightsReserved, LicenseCreativeCommons, LicenseMIT:
		return true
	}
	return false
}

// Project is a titled set of images uploaded by a student.
// Images and likes are owned by the project and are removed with it.
type Project struct {
	ID             uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID         uuid.UUID                   `json:"userId" db:"user_id" gorm:"type:uuid;not null;index:idx_project_user_created"`
	Title          string                      `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Category       string                      `json:"category" db:"category" gorm:"type:varchar(100);not null"`
	Description    string                      `json:"description" db:"description" gorm:"type:text;not null;default:''"`
	Tags           datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	Visibility     Visibility                  `json:"visibility" db:"visibility" gorm:"type:varchar(20);not null;default:'Public';index"`
	License        License                     `json:"license" db:"license" gorm:"type:varchar(50);not null;default:'All Rights Reserved'"`
	AllowDownloads bool                        `json:"allowDownloads" db:"allow_downloads" gorm:"not null;default:false"`
	CreatedAt      time.Time                   `json:"createdAt" db:"created_at" gorm:"not null;index:idx_project_user_created"`
	Views          int64                       `json:"views" db:"views" gorm:"not null;default:0;check:views >= 0"`

	User   *User          `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Images []ProjectImage `json:"images" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Likes  []Like         `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Public reports whether non-owning students may see the project
func (p *Project) Public() bool {
	return p.Visibility == VisibilityPublic
}
