package repository

import (
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindConversation(db *gorm.DB, userA, userB uuid.UUID, limit int) ([]entity.Message, error)

	// MarkRead flags all unread messages sent by `from` to `to`.
	MarkRead(db *gorm.DB, from, to uuid.UUID) error
	CountUnread(db *gorm.DB, recipientID uuid.UUID) (int64, error)
}
