package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avdeyev/duochat/internal/database"
	"github.com/avdeyev/duochat/internal/models"
)

// historyLimit — потолок выборки истории за один запрос
const historyLimit = 1000

type HistoryHandler struct {
	db *database.Database
}

func NewHistoryHandler(db *database.Database) *HistoryHandler {
	return &HistoryHandler{db: db}
}

// GetConversation возвращает переписку пары в хронологическом порядке.
// Офлайновый получатель добирает так недоставленные вживую сообщения.
func (h *HistoryHandler) GetConversation(c *gin.Context) {
	user1 := c.Param("user1")
	user2 := c.Param("user2")

	if !models.IsValidUsername(user1) || !models.IsValidUsername(user2) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid usernames"})
		return
	}

	messages, err := h.db.GetConversation(user1, user2, historyLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	result := make([]gin.H, len(messages))
	for i, msg := range messages {
		result[i] = formatHistoryRow(&msg)
	}

	c.JSON(http.StatusOK, result)
}

func formatHistoryRow(msg *models.Message) gin.H {
	row := gin.H{
		"id":        msg.ID,
		"sender":    msg.Sender,
		"receiver":  msg.Receiver,
		"message":   msg.Body,
		"file_path": msg.FilePath,
		"file_type": msg.FileType,
		"reply_to":  msg.ReplyTo,
		"is_read":   msg.IsRead,
		"timestamp": msg.CreatedAt,
	}

	// превью ответа; осиротевшая ссылка просто не дает превью
	if msg.Reply != nil {
		row["reply_message"] = msg.Reply.Body
		row["reply_sender"] = msg.Reply.Sender
	}

	return row
}
