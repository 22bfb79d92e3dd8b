package entity

import (
	"time"

	"github.com/google/uuid"
)

// SenderType tells which side of the consultation sent a message
type SenderType string

const (
	SenderTypeDoctor  SenderType = "doctor"
	SenderTypePatient SenderType = "patient"
)

// MessageType is the payload kind of a chat message
type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// Message is a persisted chat message between a doctor and a patient.
// Immutable after creation except for the read flag.
type Message struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SenderID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"sender_id"`
	RecipientID uuid.UUID   `gorm:"type:uuid;not null;index" json:"recipient_id"`
	SenderType  SenderType  `gorm:"type:varchar(10);not null" json:"sender_type"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	Type        MessageType `gorm:"type:varchar(10);not null;default:'text'" json:"type"`
	Read        bool        `gorm:"not null;default:false;index" json:"read"`
	CreatedAt   time.Time   `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Sender    User `gorm:"foreignKey:SenderID" json:"-"`
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
