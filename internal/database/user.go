package database

import (
	"time"

	"github.com/avdeyev/duochat/internal/models"
)

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UpdatePINHash(username, hash string) error {
	return d.db.Model(&models.User{}).Where("username = ?", username).Update("pin_hash", hash).Error
}

func (d *Database) UpdateProfilePicture(username, path string) error {
	return d.db.Model(&models.User{}).Where("username = ?", username).Update("profile_picture", path).Error
}

// SetOnline обновляет флаг онлайна и last_seen_at одним запросом
func (d *Database) SetOnline(username string, online bool) error {
	return d.db.Model(&models.User{}).Where("username = ?", username).Updates(map[string]interface{}{
		"is_online":    online,
		"last_seen_at": time.Now(),
	}).Error
}
