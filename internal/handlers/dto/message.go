package dto

import "encoding/json"

// FileData описывает вложение в том виде, в котором его вернул /upload
type FileData struct {
	Path         string `json:"path"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
}

// MessagePayload — событие message от клиента
type MessagePayload struct {
	Receiver  string          `json:"receiver"`
	Message   string          `json:"message"`
	FileData  *FileData       `json:"fileData,omitempty"`
	ReplyTo   *uint           `json:"replyTo,omitempty"`
	ReplyData json.RawMessage `json:"replyData,omitempty"`
}

// MessageResponse — payload событий message и message_sent
type MessageResponse struct {
	ID        uint            `json:"id"`
	Sender    string          `json:"sender"`
	Receiver  string          `json:"receiver"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	ReplyTo   *uint           `json:"replyTo"`
	ReplyData json.RawMessage `json:"replyData"`
	FileData  *FileData       `json:"fileData"`
	IsRead    bool            `json:"is_read"`
}

type TypingPayload struct {
	Receiver string `json:"receiver,omitempty"`
	Typing   bool   `json:"typing"`
}

type MarkReadPayload struct {
	MessageIDs []uint `json:"messageIds"`
}

// UserStatus — payload широковещательного события user_status
type UserStatus struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
}
