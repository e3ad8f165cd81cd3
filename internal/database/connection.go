package database

import (
	"errors"
	"log"
	"os"

	"github.com/avdeyev/duochat/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает Postgres, прогоняет миграции и отдает готовое хранилище
func Connect() (*Database, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Message{}); err != nil {
		return nil, err
	}

	return NewDatabase(db), nil
}

// Seed создает два аккаунта чата, если их еще нет.
// PIN-коды берутся из окружения, при повторном запуске ничего не перезаписывается.
func (d *Database) Seed() error {
	defaults := []struct {
		username string
		pinEnv   string
		pin      string
		gender   string
		email    string
		phone    string
	}{
		{models.UserHe, "HE_PIN", "111111", "male", os.Getenv("EMAIL_USER"), os.Getenv("HE_PHONE")},
		{models.UserShe, "SHE_PIN", "222222", "female", "she@example.com", os.Getenv("SHE_PHONE")},
	}

	for _, def := range defaults {
		var count int64
		if err := d.db.Model(&models.User{}).Where("username = ?", def.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		pin := def.pin
		if v := os.Getenv(def.pinEnv); v != "" {
			pin = v
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &models.User{
			Username: def.username,
			PINHash:  string(hash),
			Gender:   def.gender,
			Email:    def.email,
			Phone:    def.phone,
		}

		if err := d.db.Create(user).Error; err != nil {
			return err
		}
		log.Printf("Seeded user %q", def.username)
	}

	return nil
}
