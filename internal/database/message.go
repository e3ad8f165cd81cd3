package database

import (
	"github.com/avdeyev/duochat/internal/models"
)

func (d *Database) SaveMessage(message *models.Message) error {
	return d.db.Create(message).Error
}

// GetConversation возвращает всю переписку пары в хронологическом порядке
// вместе с превью сообщений, на которые были ответы
func (d *Database) GetConversation(user1, user2 string, limit int) ([]models.Message, error) {
	var messages []models.Message

	err := d.db.
		Where("(sender = ? AND receiver = ?) OR (sender = ? AND receiver = ?)",
			user1, user2, user2, user1).
		Order("id ASC").
		Limit(limit).
		Preload("Reply").
		Find(&messages).Error

	if err != nil {
		return nil, err
	}

	return messages, nil
}

// MarkMessagesRead помечает прочитанными только сообщения, адресованные читателю.
// Чужие id молча игнорируются.
func (d *Database) MarkMessagesRead(reader string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.Model(&models.Message{}).
		Where("id IN ? AND receiver = ?", ids, reader).
		Update("is_read", true).Error
}

func (d *Database) AllMessages() ([]models.Message, error) {
	var messages []models.Message
	err := d.db.Order("id ASC").Preload("Reply").Find(&messages).Error
	return messages, err
}

func (d *Database) ClearMessages() error {
	return d.db.Where("1 = 1").Delete(&models.Message{}).Error
}
