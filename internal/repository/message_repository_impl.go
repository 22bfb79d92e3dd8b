package repository

import (
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindConversation(db *gorm.DB, userA, userB uuid.UUID, limit int) ([]entity.Message, error) {
	if limit <= 0 {
		limit = 100
	}
	var messages []entity.Message
	err := db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(db *gorm.DB, from, to uuid.UUID) error {
	return db.Model(&entity.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND read = ?", from, to, false).
		Update("read", true).Error
}

func (r *messageRepository) CountUnread(db *gorm.DB, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Message{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}
