package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
	Content     string `json:"content" validate:"required,max=4000"`
	Type        string `json:"type" validate:"omitempty,oneof=text image file"`
}

// Response DTOs

type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	SenderID    uuid.UUID `json:"sender_id"`
	RecipientID uuid.UUID `json:"recipient_id"`
	SenderType  string    `json:"sender_type"`
	Content     string    `json:"content"`
	Type        string    `json:"type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type ConversationResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
