package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Exists reports whether the user currently likes the project
func (r *LikeRepo) Exists(projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a like; a second like for the same pair fails on idx_like_project_user
func (r *LikeRepo) Add(like *models.Like) error {
	return r.db.Create(like).Error
}

// Delete removes the user's like and reports whether one existed
func (r *LikeRepo) Delete(projectID, userID uuid.UUID) (bool, error) {
	result := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.Like{})
	return result.RowsAffected > 0, result.Error
}

// CountForProjects returns the total number of likes across the given projects
func (r *LikeRepo) CountForProjects(projectIDs ...uuid.UUID) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Like{}).Where("project_id IN ?", projectIDs).Count(&count).Error
	return count, err
}
