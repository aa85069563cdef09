package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the user with the given username
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// FirstAdmin returns the oldest administrator account
func (r *UserRepo) FirstAdmin() (*models.User, error) {
	var user models.User
	if err := r.db.Where("is_admin = ?", true).Order("created_at ASC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindStudents returns every non-admin user ordered by username
func (r *UserRepo) FindStudents() ([]*models.User, error) {
	var users []*models.User
	err := r.db.Where("is_admin = ?", false).Order("username ASC").Find(&users).Error
	return users, err
}

// CountStudents counts non-admin users
func (r *UserRepo) CountStudents() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("is_admin = ?", false).Count(&count).Error
	return count, err
}

// SearchStudents matches text case-insensitively against first name, last name and username
func (r *UserRepo) SearchStudents(text string) ([]*models.User, error) {
	pattern := containsPattern(text)

	var users []*models.User
	err := r.db.
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.is_admin = ?", false).
		Where(`LOWER(profiles.first_name) LIKE ? ESCAPE '\' OR LOWER(profiles.last_name) LIKE ? ESCAPE '\' OR LOWER(users.username) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// RecentlyActiveStudents returns up to limit distinct non-admin users ordered
// by the creation time of their latest project, newest first. The limit
// applies to students, not projects: deduplicating only the newest limit
// projects would return fewer students whenever one of them uploaded several
// of those projects, and this always fills the list when enough students exist.
func (r *UserRepo) RecentlyActiveStudents(limit int) ([]*models.User, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Project{}).
		Joins("JOIN users ON users.id = projects.user_id").
		Where("users.is_admin = ?", false).
		Group("projects.user_id").
		Order("MAX(projects.created_at) DESC").
		Limit(limit).
		Pluck("projects.user_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var users []*models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}
