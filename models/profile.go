package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the extended attributes of a user (one-to-one)
type Profile struct {
	ID                uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID            uuid.UUID `json:"userId" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_profile_user"`
	FirstName         string    `json:"firstName" db:"first_name" gorm:"type:varchar(150);not null;default:''"`
	LastName          string    `json:"lastName" db:"last_name" gorm:"type:varchar(150);not null;default:''"`
	Course            string    `json:"course" db:"course" gorm:"type:varchar(100);not null;default:''"`
	Mobile            string    `json:"mobile" db:"mobile" gorm:"type:varchar(15);not null;default:''"`
	Location          string    `json:"location" db:"location" gorm:"type:varchar(100);not null;default:''"`
	Address           string    `json:"address" db:"address" gorm:"type:text;not null;default:''"`
	Avatar            string    `json:"avatar" db:"avatar" gorm:"type:text;not null;default:''"`
	AppreciationCount int64     `json:"appreciationCount" db:"appreciation_count" gorm:"not null;default:0;check:appreciation_count >= 0"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// FullName is "first last", the form the admin name filter matches against
func (p *Profile) FullName() string {
	if p == nil {
		return " "
	}
	return p.FirstName + " " + p.LastName
}

// Incomplete reports whether the student still has to fill in their name or avatar
func (p *Profile) Incomplete() bool {
	return strings.TrimSpace(p.FirstName) == "" ||
		strings.TrimSpace(p.LastName) == "" ||
		strings.TrimSpace(p.Avatar) == ""
}
