package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/avdeyev/duochat/internal/chat"
	"github.com/avdeyev/duochat/internal/middleware"
	ws "github.com/avdeyev/duochat/internal/websocket"
)

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	chatHandler *chat.Handler
	upgrader    websocket.Upgrader
}

func NewWebSocketHandler(chatHandler *chat.Handler) *WebSocketHandler {
	return &WebSocketHandler{
		chatHandler: chatHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: проверить origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket апгрейдит соединение и запускает пампы.
// Регистрация в реестре происходит позже, по событию join.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	username, exists := c.Get(middleware.UsernameKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(conn, username.(string))

	go client.WritePump()
	go client.ReadPump(h.chatHandler)
}
