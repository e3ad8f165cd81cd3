package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestSendEventEnvelope(t *testing.T) {
	c := NewClient(nil, "he")

	if err := c.SendEvent(EventUserStatus, map[string]interface{}{"username": "she", "online": true}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	raw := <-c.Send
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("invalid frame: %v", err)
	}
	if event.Type != EventUserStatus {
		t.Fatalf("expected %s, got %s", EventUserStatus, event.Type)
	}

	var payload struct {
		Username string `json:"username"`
		Online   bool   `json:"online"`
	}
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		t.Fatalf("invalid payload: %v", err)
	}
	if payload.Username != "she" || !payload.Online {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSendEventWithoutData(t *testing.T) {
	c := NewClient(nil, "he")

	if err := c.SendEvent(EventSessionExpired, nil); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	var event Event
	if err := json.Unmarshal(<-c.Send, &event); err != nil {
		t.Fatalf("invalid frame: %v", err)
	}
	if event.Type != EventSessionExpired || len(event.Data) != 0 {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestCloseFlushesPendingEventsToTheWire(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}

		client := NewClient(conn, "he")
		go client.WritePump()

		// порядок выселения: уведомление, затем принудительное закрытие
		if err := client.SendEvent(EventSessionExpired, nil); err != nil {
			t.Errorf("SendEvent failed: %v", err)
		}
		client.Close()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	sawExpired := false
	for {
		var event Event
		if err := conn.ReadJSON(&event); err != nil {
			break // close frame либо deadline
		}
		if event.Type == EventSessionExpired {
			sawExpired = true
		}
	}

	if !sawExpired {
		t.Fatal("session_expired must reach the client before the connection closes")
	}
}

func TestSendEventQueueFull(t *testing.T) {
	c := NewClient(nil, "he")

	var err error
	for i := 0; i < cap(c.Send)+1; i++ {
		err = c.SendEvent(EventTyping, map[string]bool{"typing": true})
	}
	if err != ErrClientQueueFull {
		t.Fatalf("expected ErrClientQueueFull, got %v", err)
	}
}
