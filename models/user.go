package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can sign in either as an administrator or as a student
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex:idx_user_username"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false;index"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Role returns the role name used in session tokens and log fields
func (u *User) Role() string {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleStudent
}

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)
