package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения
	maxMessageSize = 512 * 1024 // 512KB
)

// Client — одно живое соединение. Username пустой до события join;
// Allowed — имя, которому соединение аутентифицировано при апгрейде.
type Client struct {
	ID      uuid.UUID
	Allowed string
	Conn    *websocket.Conn
	Send    chan []byte

	done     chan struct{}
	once     sync.Once
	mu       sync.RWMutex
	username string
}

func NewClient(conn *websocket.Conn, allowed string) *Client {
	return &Client{
		ID:      uuid.New(),
		Allowed: allowed,
		Conn:    conn,
		Send:    make(chan []byte, 256),
		done:    make(chan struct{}),
	}
}

func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

func (c *Client) SetUsername(username string) {
	c.mu.Lock()
	c.username = username
	c.mu.Unlock()
}

// Close инициирует завершение соединения; безопасно вызывать повторно
// и из любой горутины (жнец, read pump). Сокет закрывает write pump,
// предварительно дослав уже поставленные в очередь события —
// иначе уведомление вроде session_expired умрет в буфере.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// ReadPump читает события от клиента и передает их обработчику
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		handler.HandleDisconnect(c)
		c.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var event Event
		err := c.Conn.ReadJSON(&event)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		if err := handler.HandleEvent(c, &event); err != nil {
			log.Printf("Error handling %s event: %v", event.Type, err)
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.done:
			// Дослать накопившееся в очереди, затем close frame
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			for {
				select {
				case message := <-c.Send:
					if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
						return
					}
				default:
					c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
			}

		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent ставит событие в очередь отправки без блокировки
func (c *Client) SendEvent(eventType EventType, data interface{}) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}

	event := Event{Type: eventType}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		event.Data = jsonData
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case c.Send <- eventData:
		return nil
	default:
		return ErrClientQueueFull
	}
}
