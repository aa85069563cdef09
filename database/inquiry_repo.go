package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type InquiryRepo struct {
	db *gorm.DB
}

func NewInquiryRepo(db *gorm.DB) *InquiryRepo {
	return &InquiryRepo{db}
}

// Add inserts a hiring inquiry
func (r *InquiryRepo) Add(inquiry *models.HiringInquiry) error {
	return r.db.Create(inquiry).Error
}

// FindByProject returns the inquiries sent for a project, newest first
func (r *InquiryRepo) FindByProject(projectID uuid.UUID) ([]*models.HiringInquiry, error) {
	var inquiries []*models.HiringInquiry
	err := r.db.Where("project_id = ?", projectID).Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}
