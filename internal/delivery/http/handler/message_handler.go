package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/response"
	"github.com/yashsaxena18/curesight-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

// Send delivers a chat message over REST. The websocket path is preferred;
// this endpoint exists for clients without an open socket.
// @Summary Send a message
// @Tags Messages
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Message Request"
// @Success 201 {object} response.Response
// @Router /messages [post]
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.SendMessage(r.Context(), senderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRecipient, usecase.ErrSelfMessage:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrRecipientNotFound:
			response.NotFound(w, "Recipient not found")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetConversation returns the chat history with one peer and marks their
// messages as read
// @Summary Get conversation
// @Tags Messages
// @Security BearerAuth
// @Produce json
// @Param peer_id path string true "Peer user ID"
// @Success 200 {object} response.Response
// @Router /messages/{peer_id} [get]
func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	peerID, err := uuid.Parse(mux.Vars(r)["peer_id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid peer ID", nil)
		return
	}

	conversation, err := h.messageUsecase.GetConversation(r.Context(), userID, peerID)
	if err != nil {
		response.InternalServerError(w, "Failed to load conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", conversation)
}

// GetUnreadCount returns how many unread messages the caller has
// @Summary Get unread message count
// @Tags Messages
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /messages/unread/count [get]
func (h *MessageHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	count, err := h.messageUsecase.GetUnreadCount(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to count unread messages")
		return
	}

	response.Success(w, http.StatusOK, "Unread count retrieved successfully", map[string]int64{"unread": count})
}
