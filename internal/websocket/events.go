package websocket

import (
	"encoding/json"
)

// EventType определяет типы событий канала
type EventType string

const (
	// Клиент → сервер
	EventJoin      EventType = "join"
	EventHeartbeat EventType = "heartbeat"
	EventMarkRead  EventType = "mark_read"

	// Оба направления
	EventMessage EventType = "message"
	EventTyping  EventType = "typing"

	// Сервер → клиент
	EventMessageSent    EventType = "message_sent"
	EventUserStatus     EventType = "user_status"
	EventOnlineUsers    EventType = "online_users"
	EventSessionExpired EventType = "session_expired"
)

type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// EventHandler обрабатывает входящие события одного соединения.
// ReadPump вызывает его последовательно, событие за событием.
type EventHandler interface {
	HandleEvent(client *Client, event *Event) error
	HandleDisconnect(client *Client)
}
