package models

import (
	"time"
)

// Два фиксированных аккаунта чата
const (
	UserHe  = "he"
	UserShe = "she"
)

// IsValidUsername проверяет, что имя — один из двух аккаунтов
func IsValidUsername(username string) bool {
	return username == UserHe || username == UserShe
}

// PeerOf возвращает второго участника чата
func PeerOf(username string) string {
	if username == UserHe {
		return UserShe
	}
	return UserHe
}

type User struct {
	ID             uint   `gorm:"primaryKey"`
	Username       string `gorm:"uniqueIndex;not null"`
	PINHash        string `gorm:"column:pin_hash;not null"`
	Gender         string
	Email          string
	Phone          string
	ProfilePicture string
	IsOnline       bool `gorm:"default:false"`
	LastSeenAt     time.Time
	CreatedAt      time.Time
}
