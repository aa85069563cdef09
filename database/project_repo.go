package database

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectQuery narrows ListByUser. The zero value lists every project, newest first.
type ProjectQuery struct {
	PublicOnly    bool
	TitleContains string
	CreatedSince  *time.Time
	Ascending     bool
	Limit         int
}

// FindByID returns a project with its images
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Images").First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a project and its images in a single statement batch
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// ListByUser returns the user's projects with images, filtered and ordered by q
func (r *ProjectRepo) ListByUser(userID uuid.UUID, q ProjectQuery) ([]*models.Project, error) {
	tx := r.db.Preload("Images").Where("user_id = ?", userID)

	if q.PublicOnly {
		tx = tx.Where("visibility = ?", models.VisibilityPublic)
	}
	if title := strings.TrimSpace(q.TitleContains); title != "" {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(title))
	}
	if q.CreatedSince != nil {
		tx = tx.Where("created_at >= ?", *q.CreatedSince)
	}
	if q.Ascending {
		tx = tx.Order("created_at ASC")
	} else {
		tx = tx.Order("created_at DESC")
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var projects []*models.Project
	err := tx.Find(&projects).Error
	return projects, err
}

// Count returns the number of projects in the system
func (r *ProjectRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

// IncrementViews atomically adds one to the view counter and returns the new value
func (r *ProjectRepo) IncrementViews(id uuid.UUID) (int64, error) {
	result := r.db.Model(&models.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var views int64
	err := r.db.Model(&models.Project{}).Where("id = ?", id).Pluck("views", &views).Error
	return views, err
}

// Delete removes a project together with the rows it owns (images, likes) and
// the inquiries and messages that reference it
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{&models.ProjectImage{}, &models.Like{}, &models.HiringInquiry{}, &models.Message{}} {
			if err := tx.Where("project_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&models.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
