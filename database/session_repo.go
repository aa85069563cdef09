package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db}
}

// Add inserts a new session
func (r *SessionRepo) Add(session *models.Session) error {
	return r.db.Create(session).Error
}

// FindByID returns a session together with its user
func (r *SessionRepo) FindByID(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	if err := r.db.Preload("User").First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke marks the session as logged out. Revoking twice keeps the first timestamp.
func (r *SessionRepo) Revoke(id uuid.UUID, at time.Time) error {
	return r.db.Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", at).Error
}
