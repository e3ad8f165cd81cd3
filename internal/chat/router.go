package chat

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/avdeyev/duochat/internal/handlers/dto"
	"github.com/avdeyev/duochat/internal/models"
	"github.com/avdeyev/duochat/internal/notify"
	ws "github.com/avdeyev/duochat/internal/websocket"
)

// Store — срез хранилища, нужный живому каналу.
// Реализуется database.Database; в тестах подменяется фейком.
type Store interface {
	SaveMessage(message *models.Message) error
	MarkMessagesRead(reader string, ids []uint) error
	SetOnline(username string, online bool) error
}

// Handler маршрутизирует события живого канала: регистрация в реестре,
// доставка сообщений, квитанции о прочтении, индикатор набора текста
type Handler struct {
	dir      *Directory
	store    Store
	notifier notify.Notifier
}

func NewHandler(dir *Directory, store Store, notifier notify.Notifier) *Handler {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Handler{
		dir:      dir,
		store:    store,
		notifier: notifier,
	}
}

// HandleEvent разбирает входящее событие соединения и передает его
// соответствующему методу. ReadPump гарантирует последовательность:
// события одного соединения обрабатываются строго по порядку.
func (h *Handler) HandleEvent(c *ws.Client, event *ws.Event) error {
	switch event.Type {
	case ws.EventJoin:
		var username string
		if err := json.Unmarshal(event.Data, &username); err != nil ||
			(c.Allowed != "" && username != c.Allowed) {
			// fail-fast: невалидное имя — принудительный разрыв без payload
			c.Close()
			return nil
		}
		if !h.Join(username, c) {
			c.Close()
			return nil
		}
		c.SetUsername(username)
		return nil

	case ws.EventHeartbeat:
		h.dir.Touch(c.Username())
		return nil

	case ws.EventMessage:
		if len(event.Data) == 0 {
			return ws.ErrInvalidEvent
		}
		var payload dto.MessagePayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return err
		}
		h.Send(c.Username(), c, payload)
		return nil

	case ws.EventTyping:
		if len(event.Data) == 0 {
			return ws.ErrInvalidEvent
		}
		var payload dto.TypingPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return err
		}
		h.Typing(c.Username(), payload)
		return nil

	case ws.EventMarkRead:
		if len(event.Data) == 0 {
			return ws.ErrInvalidEvent
		}
		var payload dto.MarkReadPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return err
		}
		h.MarkRead(c.Username(), payload.MessageIDs)
		return nil

	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

// HandleDisconnect вызывается по завершении read pump
func (h *Handler) HandleDisconnect(c *ws.Client) {
	username := c.Username()
	if username == "" {
		return
	}
	h.Disconnect(username, c)
}

// Join регистрирует соединение под именем username.
// Возвращает false для имени вне пары — соединение подлежит разрыву.
func (h *Handler) Join(username string, peer Peer) bool {
	if !models.IsValidUsername(username) {
		return false
	}

	h.dir.Join(username, peer)

	// push-уведомление при появлении второго аккаунта, сбои только в лог
	if username == models.UserShe {
		go h.notifier.UserOnline(username)
	}

	return true
}

// Send — путь доставки сообщения: сперва запись в хранилище, затем
// доставка получателю (если онлайн) и подтверждение отправителю.
// Нарушение предусловий — молчаливый дроп.
func (h *Handler) Send(sender string, senderPeer Peer, payload dto.MessagePayload) {
	if !models.IsValidUsername(sender) || !models.IsValidUsername(payload.Receiver) ||
		sender == payload.Receiver {
		return
	}

	body := SanitizeBody(payload.Message)
	if body == "" && payload.FileData == nil {
		return
	}

	message := &models.Message{
		Sender:    sender,
		Receiver:  payload.Receiver,
		Body:      body,
		ReplyTo:   payload.ReplyTo,
		CreatedAt: time.Now(),
	}
	if payload.FileData != nil {
		message.FilePath = payload.FileData.Path
		message.FileType = payload.FileData.MimeType
		message.FileName = payload.FileData.OriginalName
		message.FileSize = payload.FileData.Size
	}

	// запись — граница долговечности: без нее никаких уведомлений
	if err := h.store.SaveMessage(message); err != nil {
		log.Printf("Failed to save message from %s: %v", sender, err)
		return
	}

	response := dto.MessageResponse{
		ID:        message.ID,
		Sender:    sender,
		Receiver:  payload.Receiver,
		Message:   body,
		Timestamp: message.CreatedAt.UTC().Format(time.RFC3339),
		ReplyTo:   payload.ReplyTo,
		ReplyData: payload.ReplyData,
		FileData:  payload.FileData,
		IsRead:    false,
	}

	// письмо, когда "she" пишет офлайновому "he"; не блокирует доставку
	if sender == models.UserShe && !h.dir.Contains(models.PeerOf(sender)) {
		go h.notifier.OfflineMessage(sender, offlinePreview(body, payload.FileData))
	}

	if peer, ok := h.dir.Get(payload.Receiver); ok {
		peer.SendEvent(ws.EventMessage, response)
	}

	senderPeer.SendEvent(ws.EventMessageSent, response)
}

// Typing пересылает эфемерное состояние набора; офлайновый получатель —
// молчаливый no-op
func (h *Handler) Typing(sender string, payload dto.TypingPayload) {
	if sender == "" {
		return
	}
	if peer, ok := h.dir.Get(payload.Receiver); ok {
		peer.SendEvent(ws.EventTyping, dto.TypingPayload{Typing: payload.Typing})
	}
}

// MarkRead помечает прочитанными сообщения, адресованные читателю,
// одним батчевым запросом. Хранимый флаг — источник истины.
func (h *Handler) MarkRead(reader string, ids []uint) {
	if reader == "" || len(ids) == 0 {
		return
	}
	if err := h.store.MarkMessagesRead(reader, ids); err != nil {
		log.Printf("Mark read error: %v", err)
	}
}

// Disconnect убирает соединение из реестра. Если запись была вытеснена
// переподключением, статус пользователя не трогается.
func (h *Handler) Disconnect(username string, peer Peer) {
	h.dir.Remove(username, peer)

	if h.dir.Contains(username) {
		return
	}

	go func() {
		if err := h.store.SetOnline(username, false); err != nil {
			log.Printf("Failed to mark %s offline: %v", username, err)
		}
	}()

	h.dir.Broadcast(ws.EventUserStatus, dto.UserStatus{Username: username, Online: false}, peer)
}

// SanitizeBody обрезает пробелы и ограничивает длину текста
func SanitizeBody(body string) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) > models.MaxBodyLen {
		return string(runes[:models.MaxBodyLen])
	}
	return body
}

func offlinePreview(body string, file *dto.FileData) string {
	preview := body
	if file != nil {
		if strings.HasPrefix(file.MimeType, "image/") {
			preview += " [Photo]"
		} else {
			preview += " [File: " + file.OriginalName + "]"
		}
	}
	return preview
}
