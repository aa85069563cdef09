package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/student-portfolio-backend/models"
	"gorm.io/gorm"
)

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db}
}

// InboxFilter selects the messages of one recipient
type InboxFilter struct {
	RecipientID uuid.UUID
	// ExcludeAdminSenders hides messages sent by any administrator
	ExcludeAdminSenders bool
}

func (r *MessageRepo) scope(f InboxFilter) *gorm.DB {
	tx := r.db.Model(&models.Message{}).Where("recipient_id = ?", f.RecipientID)
	if f.ExcludeAdminSenders {
		admins := r.db.Model(&models.User{}).Select("id").Where("is_admin = ?", true)
		tx = tx.Where("sender_id NOT IN (?)", admins)
	}
	return tx
}

// Add inserts a message
func (r *MessageRepo) Add(message *models.Message) error {
	return r.db.Create(message).Error
}

// List returns the recipient's messages newest first; limit <= 0 means all
func (r *MessageRepo) List(f InboxFilter, limit int) ([]*models.Message, error) {
	tx := r.scope(f).Preload("Sender").Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var messages []*models.Message
	err := tx.Find(&messages).Error
	return messages, err
}

func (r *MessageRepo) Count(f InboxFilter) (int64, error) {
	var count int64
	err := r.scope(f).Count(&count).Error
	return count, err
}

func (r *MessageRepo) CountUnread(f InboxFilter) (int64, error) {
	var count int64
	err := r.scope(f).Where("read = ?", false).Count(&count).Error
	return count, err
}

// MarkRead flips the listed messages of the inbox to read. Messages already
// read are left alone; read never goes back to false.
func (r *MessageRepo) MarkRead(f InboxFilter, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.scope(f).Where("id IN ? AND read = ?", ids, false).UpdateColumn("read", true)
	return result.RowsAffected, result.Error
}
