package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avdeyev/duochat/internal/database"
	"github.com/avdeyev/duochat/internal/models"
	"github.com/avdeyev/duochat/internal/notify"
)

type ExportHandler struct {
	db       *database.Database
	notifier notify.Notifier
}

func NewExportHandler(db *database.Database, notifier notify.Notifier) *ExportHandler {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &ExportHandler{db: db, notifier: notifier}
}

// ClearChat отправляет текстовый экспорт всей истории на почту
// и затем удаляет сообщения. Без успешного экспорта история не трогается.
func (h *ExportHandler) ClearChat(c *gin.Context) {
	messages, err := h.db.AllMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	transcript := buildTranscript(messages)

	if err := h.notifier.ChatExport("Chat History Export", transcript); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export chat"})
		return
	}

	if err := h.db.ClearMessages(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear chat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Chat cleared and exported to email"})
}

func buildTranscript(messages []models.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Chat History Export\nGenerated on: %s\nTotal messages: %d\n\n",
		time.Now().Format(time.RFC1123), len(messages))

	for _, msg := range messages {
		fmt.Fprintf(&b, "[%s] %s: ", msg.CreatedAt.Format(time.RFC1123), msg.Sender)

		if msg.Reply != nil {
			fmt.Fprintf(&b, "(Reply to: %s) ", msg.Reply.Body)
		}

		if msg.FilePath != "" {
			fmt.Fprintf(&b, "[File: %s] ", path.Base(msg.FilePath))
		}

		b.WriteString(msg.Body)
		b.WriteString("\n")
	}

	return b.String()
}
