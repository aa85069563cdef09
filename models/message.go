package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a directed note between two users, optionally about a project.
// Read only ever moves from false to true.
type Message struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID   *uuid.UUID `json:"projectId,omitempty" db:"project_id" gorm:"type:uuid;index"`
	SenderID    uuid.UUID  `json:"senderId" db:"sender_id" gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID  `json:"recipientId" db:"recipient_id" gorm:"type:uuid;not null;index:idx_message_recipient_read"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	Read        bool       `json:"read" db:"read" gorm:"not null;default:false;index:idx_message_recipient_read"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"not null;index"`

	Project   *Project `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Sender    *User    `json:"sender,omitempty" gorm:"foreignKey:SenderID;references:ID;constraint:OnDelete:CASCADE"`
	Recipient *User    `json:"-" gorm:"foreignKey:RecipientID;references:ID;constraint:OnDelete:CASCADE"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
