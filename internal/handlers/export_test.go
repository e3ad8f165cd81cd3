package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/avdeyev/duochat/internal/models"
)

func TestBuildTranscript(t *testing.T) {
	replyTo := uint(1)
	messages := []models.Message{
		{
			ID:        1,
			Sender:    models.UserHe,
			Receiver:  models.UserShe,
			Body:      "hello",
			CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Sender:    models.UserShe,
			Receiver:  models.UserHe,
			Body:      "look",
			FilePath:  "/uploads/abc-photo.png",
			ReplyTo:   &replyTo,
			Reply:     &models.Message{ID: 1, Sender: models.UserHe, Body: "hello"},
			CreatedAt: time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC),
		},
	}

	transcript := buildTranscript(messages)

	if !strings.Contains(transcript, "Total messages: 2") {
		t.Fatalf("missing message count header:\n%s", transcript)
	}
	if !strings.Contains(transcript, "he: hello") {
		t.Fatalf("missing first message line:\n%s", transcript)
	}
	if !strings.Contains(transcript, "(Reply to: hello)") {
		t.Fatalf("missing reply preview:\n%s", transcript)
	}
	if !strings.Contains(transcript, "[File: abc-photo.png]") {
		t.Fatalf("missing file marker:\n%s", transcript)
	}
}
