package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/errs"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// FindByID returns a profile and its user
func (r *ProfileRepo) FindByID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Preload("User").First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserID returns the profile of a user, or nil when none exists yet
func (r *ProfileRepo) FindByUserID(userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindByUserIDs returns the existing profiles of the given users keyed by user ID
func (r *ProfileRepo) FindByUserIDs(userIDs []uuid.UUID) (map[uuid.UUID]*models.Profile, error) {
	out := make(map[uuid.UUID]*models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var profiles []*models.Profile
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.UserID] = p
	}
	return out, nil
}

// GetOrCreate returns the user's profile, creating an empty one on first access
func (r *ProfileRepo) GetOrCreate(userID uuid.UUID) (*models.Profile, error) {
	profile, err := r.FindByUserID(userID)
	if err != nil || profile != nil {
		return profile, err
	}

	profile = &models.Profile{UserID: userID}
	if err := r.db.Create(profile).Error; err != nil {
		// a concurrent request created it first
		if errs.IsUniqueViolation(err) {
			return r.FindByUserID(userID)
		}
		return nil, err
	}
	return profile, nil
}

// Update saves every editable column of the profile
func (r *ProfileRepo) Update(profile *models.Profile) error {
	return r.db.Model(profile).Select(
		"first_name", "last_name", "course", "mobile", "location", "address", "avatar",
	).Updates(profile).Error
}

// IncrementAppreciation atomically adds one to the user's appreciation counter.
// It reports false when the user has no profile.
func (r *ProfileRepo) IncrementAppreciation(userID uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("appreciation_count", gorm.Expr("appreciation_count + ?", 1))
	return result.RowsAffected > 0, result.Error
}
