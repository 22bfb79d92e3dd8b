package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type fakeChatSaver struct {
	calls int
	fail  bool
	delay time.Duration
}

func (f *fakeChatSaver) SaveIncoming(ctx context.Context, senderID, recipientID uuid.UUID, content, messageType string) (interface{}, error) {
	f.calls++
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.fail {
		return nil, context.DeadlineExceeded
	}
	return map[string]string{
		"sender_id":    senderID.String(),
		"recipient_id": recipientID.String(),
		"content":      content,
		"type":         messageType,
	}, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// dialTestClient connects a websocket client for userID to a hub-backed
// test server.
func dialTestClient(t *testing.T, hub *Hub, userID uuid.UUID) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, userID)
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Wait for the hub to register the connection
	deadline := time.Now().Add(time.Second)
	for !hub.IsOnline(userID) {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) *Event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return &event
}

func TestHubChatRelay(t *testing.T) {
	hub := NewHub(testLogger())
	saver := &fakeChatSaver{}
	hub.SetChatSaver(saver)

	alice := uuid.New()
	bob := uuid.New()
	aliceConn := dialTestClient(t, hub, alice)
	bobConn := dialTestClient(t, hub, bob)

	payload, _ := json.Marshal(ChatPayload{Content: "hello doctor", Type: "text"})
	frame, _ := json.Marshal(Event{Type: EventSendMessage, To: bob, Data: payload})
	if err := aliceConn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Both sides receive the stored copy as new-message
	forBob := readEvent(t, bobConn)
	if forBob.Type != EventNewMessage {
		t.Errorf("recipient event type = %q, want %q", forBob.Type, EventNewMessage)
	}
	if forBob.From != alice {
		t.Errorf("recipient event from = %s, want %s", forBob.From, alice)
	}

	echo := readEvent(t, aliceConn)
	if echo.Type != EventNewMessage {
		t.Errorf("sender echo type = %q, want %q", echo.Type, EventNewMessage)
	}

	if saver.calls != 1 {
		t.Errorf("SaveIncoming calls = %d, want 1", saver.calls)
	}
}

func TestHubChatSaveFailure(t *testing.T) {
	hub := NewHub(testLogger())
	hub.SetChatSaver(&fakeChatSaver{fail: true})

	alice := uuid.New()
	aliceConn := dialTestClient(t, hub, alice)

	payload, _ := json.Marshal(ChatPayload{Content: "hello"})
	frame, _ := json.Marshal(Event{Type: EventSendMessage, To: uuid.New(), Data: payload})
	if err := aliceConn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}

	event := readEvent(t, aliceConn)
	if event.Type != EventError {
		t.Errorf("event type = %q, want %q", event.Type, EventError)
	}
}

// A user reconnecting while their previous connection is still inside a
// slow chat save must not bring the relay down: the error frame for the
// replaced connection is dropped and the new connection keeps working.
func TestHubReconnectDuringChatSave(t *testing.T) {
	hub := NewHub(testLogger())
	hub.SetChatSaver(&fakeChatSaver{fail: true, delay: 300 * time.Millisecond})

	userID := uuid.New()
	first := dialTestClient(t, hub, userID)

	payload, _ := json.Marshal(ChatPayload{Content: "hello"})
	frame, _ := json.Marshal(Event{Type: EventSendMessage, To: uuid.New(), Data: payload})
	if err := first.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Let the save start, then replace the connection mid-save
	time.Sleep(50 * time.Millisecond)
	second := dialTestClient(t, hub, userID)

	// The save finishes against the replaced connection
	time.Sleep(400 * time.Millisecond)

	if !hub.SendToUser(userID, EventAppointmentReminder, map[string]string{"status": "upcoming"}) {
		t.Fatal("replacement connection no longer registered")
	}
	event := readEvent(t, second)
	if event.Type != EventAppointmentReminder {
		t.Errorf("type = %q, want %q", event.Type, EventAppointmentReminder)
	}
}

func TestHubSignalRelayStampsSender(t *testing.T) {
	hub := NewHub(testLogger())

	caller := uuid.New()
	callee := uuid.New()
	callerConn := dialTestClient(t, hub, caller)
	calleeConn := dialTestClient(t, hub, callee)

	offer := json.RawMessage(`{"sdp":"v=0"}`)
	frame, _ := json.Marshal(Event{Type: EventVoiceCallRequest, To: callee, Data: offer})
	if err := callerConn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("write: %v", err)
	}

	event := readEvent(t, calleeConn)
	if event.Type != EventVoiceCallRequest {
		t.Errorf("type = %q, want %q", event.Type, EventVoiceCallRequest)
	}
	if event.From != caller {
		t.Errorf("from = %s, want %s", event.From, caller)
	}
	if string(event.Data) != string(offer) {
		t.Errorf("data = %s, want %s", event.Data, offer)
	}
}

func TestHubSendToUserOffline(t *testing.T) {
	hub := NewHub(testLogger())

	if hub.SendToUser(uuid.New(), EventAppointmentReminder, map[string]string{"x": "y"}) {
		t.Error("expected SendToUser to report false for offline user")
	}
}

func TestHubIsOnline(t *testing.T) {
	hub := NewHub(testLogger())
	userID := uuid.New()

	if hub.IsOnline(userID) {
		t.Error("user should be offline before connecting")
	}

	dialTestClient(t, hub, userID)

	if !hub.IsOnline(userID) {
		t.Error("user should be online after connecting")
	}
}

func TestHubSendToUserDelivers(t *testing.T) {
	hub := NewHub(testLogger())
	userID := uuid.New()
	conn := dialTestClient(t, hub, userID)

	if !hub.SendToUser(userID, EventAppointmentReminder, map[string]string{"booking_code": "CS-20260901-AB12CD"}) {
		t.Fatal("expected delivery to connected user")
	}

	event := readEvent(t, conn)
	if event.Type != EventAppointmentReminder {
		t.Errorf("type = %q, want %q", event.Type, EventAppointmentReminder)
	}
}
