package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HiringType string

const (
	HiringFreelancing HiringType = "Freelancing"
	HiringCompany     HiringType = "Company"
)

func (t HiringType) Valid() bool {
	return t == HiringFreelancing || t == HiringCompany
}

// HiringInquiry records interest in the owner of a project. Rows are never updated.
type HiringInquiry struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   uuid.UUID  `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	SenderID    uuid.UUID  `json:"senderId" db:"sender_id" gorm:"type:uuid;not null;index"`
	HiringFor   string     `json:"hiringFor" db:"hiring_for" gorm:"type:varchar(255);not null"`
	Categories  string     `json:"categories" db:"categories" gorm:"type:varchar(255);not null"`
	Budget      string     `json:"budget" db:"budget" gorm:"type:varchar(100);not null"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null"`
	Note        *string    `json:"note,omitempty" db:"note" gorm:"type:text"`
	HiringType  HiringType `json:"hiringType" db:"hiring_type" gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"not null"`

	Project *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Sender  *User    `json:"-" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE"`
}

func (h *HiringInquiry) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

func (h *HiringInquiry) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrNotImplemented
}
