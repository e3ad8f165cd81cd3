package models

import (
	"time"
)

// MaxBodyLen — максимальная длина текста сообщения
const MaxBodyLen = 1000

type Message struct {
	ID       uint   `gorm:"primaryKey"`
	Sender   string `gorm:"not null;index"`
	Receiver string `gorm:"not null;index"`
	Body     string

	// Вложение (опционально)
	FilePath string
	FileType string
	FileName string
	FileSize int64

	// Ответ на другое сообщение; осиротевшая ссылка допустима,
	// она влияет только на превью ответа
	ReplyTo *uint
	Reply   *Message `gorm:"foreignKey:ReplyTo"`

	IsRead    bool `gorm:"default:false"`
	CreatedAt time.Time
}
