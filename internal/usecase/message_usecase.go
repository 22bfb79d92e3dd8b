package usecase

import (
	"context"
	"errors"

	"github.com/yashsaxena18/curesight-server/internal/converter"
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/delivery/ws"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrInvalidRecipient  = errors.New("invalid recipient id")
	ErrSelfMessage       = errors.New("cannot send a message to yourself")
)

const conversationLimit = 200

type MessageUsecase interface {
	SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetConversation(ctx context.Context, userID, peerID uuid.UUID) (*dto.ConversationResponse, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type messageUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	hub         *ws.Hub
}

func NewMessageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	hub *ws.Hub,
) MessageUsecase {
	return &messageUsecase{
		db:          db,
		log:         log,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		hub:         hub,
	}
}

// SendMessage persists the message and, when the recipient is online,
// pushes it over their websocket. REST and websocket sends share this path.
func (u *messageUsecase) SendMessage(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return nil, ErrInvalidRecipient
	}

	messageType := req.Type
	if messageType == "" {
		messageType = string(entity.MessageTypeText)
	}

	message, err := u.persist(ctx, senderID, recipientID, req.Content, messageType)
	if err != nil {
		return nil, err
	}

	response := converter.MessageToResponse(message)
	if u.hub != nil {
		u.hub.SendToUser(recipientID, ws.EventNewMessage, response)
	}

	return response, nil
}

// SaveIncoming implements ws.ChatSaver for frames arriving over the socket.
func (u *messageUsecase) SaveIncoming(ctx context.Context, senderID, recipientID uuid.UUID, content, messageType string) (interface{}, error) {
	if messageType == "" {
		messageType = string(entity.MessageTypeText)
	}

	message, err := u.persist(ctx, senderID, recipientID, content, messageType)
	if err != nil {
		return nil, err
	}
	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) GetConversation(ctx context.Context, userID, peerID uuid.UUID) (*dto.ConversationResponse, error) {
	db := u.db.WithContext(ctx)

	messages, err := u.messageRepo.FindConversation(db, userID, peerID, conversationLimit)
	if err != nil {
		u.log.Warnf("Failed to load conversation: %+v", err)
		return nil, err
	}

	// Opening the conversation reads everything the peer sent
	if err := u.messageRepo.MarkRead(db, peerID, userID); err != nil {
		u.log.Warnf("Failed to mark messages read: %+v", err)
	}

	return &dto.ConversationResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}

func (u *messageUsecase) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := u.messageRepo.CountUnread(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to count unread messages: %+v", err)
		return 0, err
	}
	return count, nil
}

func (u *messageUsecase) persist(ctx context.Context, senderID, recipientID uuid.UUID, content, messageType string) (*entity.Message, error) {
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}

	db := u.db.WithContext(ctx)

	sender, err := u.userRepo.FindByID(db, senderID)
	if err != nil {
		u.log.Warnf("Failed to find sender: %+v", err)
		return nil, err
	}
	if sender == nil {
		return nil, ErrUserNotFound
	}

	recipient, err := u.userRepo.FindByID(db, recipientID)
	if err != nil {
		u.log.Warnf("Failed to find recipient: %+v", err)
		return nil, err
	}
	if recipient == nil || !recipient.IsActive {
		return nil, ErrRecipientNotFound
	}

	senderType := entity.SenderTypePatient
	if sender.RoleID == entity.RoleIDDoctor {
		senderType = entity.SenderTypeDoctor
	}

	message := &entity.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		SenderType:  senderType,
		Content:     content,
		Type:        entity.MessageType(messageType),
	}

	if err := u.messageRepo.Create(db, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return message, nil
}
