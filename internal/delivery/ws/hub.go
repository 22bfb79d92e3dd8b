package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChatSaver persists an incoming chat frame before it is relayed.
// Implemented by the message usecase; the hub never touches storage itself.
type ChatSaver interface {
	SaveIncoming(ctx context.Context, senderID, recipientID uuid.UUID, content, messageType string) (interface{}, error)
}

// Hub tracks one websocket client per user id and relays frames between
// them. A newer connection for the same user replaces the older one.
// Frames addressed to a user without a connection are dropped: the relay
// carries live traffic only, history comes from the REST endpoints.
type Hub struct {
	log       *logrus.Logger
	chatSaver ChatSaver

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[uuid.UUID]*Client),
	}
}

// SetChatSaver wires the message usecase in after construction; bootstrap
// builds the hub before the usecases so handlers can depend on it.
func (h *Hub) SetChatSaver(saver ChatSaver) {
	h.chatSaver = saver
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	old, exists := h.clients[client.userID]
	h.clients[client.userID] = client
	h.mu.Unlock()

	if exists {
		old.close()
		h.log.Debugf("Replaced websocket connection for user %s", client.userID)
	}
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	current, exists := h.clients[client.userID]
	if exists && current == client {
		delete(h.clients, client.userID)
	}
	h.mu.Unlock()
	client.close()
}

// IsOnline reports whether the user currently holds a websocket connection.
func (h *Hub) IsOnline(userID uuid.UUID) bool {
	h.mu.RLock()
	_, ok := h.clients[userID]
	h.mu.RUnlock()
	return ok
}

// SendToUser delivers a server-built event to one user. Returns false when
// the user has no connection; callers decide whether that matters.
func (h *Hub) SendToUser(userID uuid.UUID, eventType string, payload interface{}) bool {
	frame, err := marshalEvent(eventType, uuid.Nil, userID, payload)
	if err != nil {
		h.log.Warnf("Failed to marshal %s event: %+v", eventType, err)
		return false
	}
	return h.deliver(userID, frame)
}

func (h *Hub) deliver(userID uuid.UUID, frame []byte) bool {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	if client.trySend(frame) {
		return true
	}
	// Slow consumer: drop the connection rather than block the hub.
	h.log.Warnf("Dropping unresponsive websocket client %s", userID)
	h.unregister(client)
	return false
}

// dispatch handles one decoded frame from a connected client.
func (h *Hub) dispatch(client *Client, event *Event) {
	switch event.Type {
	case EventSendMessage:
		h.handleChat(client, event)
	case EventVoiceCallRequest, EventVoiceCallAnswer, EventVoiceCallEnded, EventICECandidate:
		h.relaySignal(client, event)
	default:
		h.log.Debugf("Ignoring unknown websocket event %q from %s", event.Type, client.userID)
	}
}

// handleChat persists the message, echoes the stored copy back to the
// sender, and delivers it to the recipient as new-message.
func (h *Hub) handleChat(client *Client, event *Event) {
	if event.To == uuid.Nil {
		h.sendError(client, "send-message requires a target user")
		return
	}

	var payload ChatPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil || payload.Content == "" {
		h.sendError(client, "invalid chat payload")
		return
	}
	if payload.Type == "" {
		payload.Type = "text"
	}

	if h.chatSaver == nil {
		h.sendError(client, "messaging unavailable")
		return
	}

	saved, err := h.chatSaver.SaveIncoming(context.Background(), client.userID, event.To, payload.Content, payload.Type)
	if err != nil {
		h.log.Warnf("Failed to persist websocket chat message from %s: %+v", client.userID, err)
		h.sendError(client, "failed to save message")
		return
	}

	frame, err := marshalEvent(EventNewMessage, client.userID, event.To, saved)
	if err != nil {
		h.log.Warnf("Failed to marshal new-message event: %+v", err)
		return
	}

	h.deliver(event.To, frame)
	h.deliver(client.userID, frame)
}

// relaySignal forwards a call-signaling frame untouched except for the
// stamped sender. Offline targets are dropped with a log line; the WebRTC
// layer in the SPA handles its own timeouts.
func (h *Hub) relaySignal(client *Client, event *Event) {
	if event.To == uuid.Nil {
		h.sendError(client, event.Type+" requires a target user")
		return
	}

	frame, err := json.Marshal(Event{
		Type: event.Type,
		From: client.userID,
		To:   event.To,
		Data: event.Data,
	})
	if err != nil {
		h.log.Warnf("Failed to marshal %s relay frame: %+v", event.Type, err)
		return
	}

	if !h.deliver(event.To, frame) {
		h.log.Debugf("Dropped %s for offline user %s", event.Type, event.To)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	frame, err := marshalEvent(EventError, uuid.Nil, client.userID, map[string]string{"message": message})
	if err != nil {
		return
	}
	client.trySend(frame)
}
