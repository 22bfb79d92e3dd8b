package ws

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Event types exchanged with the SPA. Chat events are persisted before
// delivery; the call-signaling events are relayed verbatim between the two
// peers and never stored.
const (
	EventSendMessage      = "send-message"
	EventNewMessage       = "new-message"
	EventVoiceCallRequest = "voice-call-request"
	EventVoiceCallAnswer  = "voice-call-answer"
	EventVoiceCallEnded   = "voice-call-ended"
	EventICECandidate     = "ice-candidate"

	// Server-originated events
	EventAppointmentReminder = "appointment-reminder"
	EventError               = "error"
)

// Event is the wire envelope for every websocket frame.
// `To` names the target user for client-originated frames; the hub stamps
// `From` before relaying so a client cannot spoof the sender.
type Event struct {
	Type string          `json:"type"`
	To   uuid.UUID       `json:"to,omitempty"`
	From uuid.UUID       `json:"from,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ChatPayload is the Data of a send-message frame.
type ChatPayload struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

func marshalEvent(eventType string, from, to uuid.UUID, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type: eventType,
		From: from,
		To:   to,
		Data: raw,
	})
}
