package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
)

// MessageToResponse converts a Message entity to its DTO
func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}
	return &dto.MessageResponse{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		SenderType:  string(message.SenderType),
		Content:     message.Content,
		Type:        string(message.Type),
		Read:        message.Read,
		CreatedAt:   message.CreatedAt,
	}
}

// MessagesToResponses converts a slice of Message entities
func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = *MessageToResponse(&message)
	}
	return responses
}
