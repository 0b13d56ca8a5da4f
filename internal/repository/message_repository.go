package repository

import (
	"errors"
	"time"

	"github.com/inkwell-app/inkwell/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) CountForUser(userID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Scopes(Listable).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// ListForUser returns the user's conversations, newest first. A message is
// visible to its sender and its receiver, nobody else.
func (r *MessageRepository) ListForUser(userID uint64, offset, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Scopes(Listable).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) GetByID(id uint64) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepository) MarkDeleted(id uint64) error {
	return r.db.Model(&models.Message{}).
		Where("id = ? AND deleted = ?", id, false).
		Updates(statusMark("deleted", time.Now())).Error
}

func (r *MessageRepository) HardDelete(id uint64) error {
	return r.db.Delete(&models.Message{}, id).Error
}
