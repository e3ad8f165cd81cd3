package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avdeyev/duochat/internal/database"
	"github.com/avdeyev/duochat/internal/middleware"
	"github.com/avdeyev/duochat/internal/models"
)

const maxProfilePictureSize = 5 * 1024 * 1024 // 5MB

type ProfileHandler struct {
	db        *database.Database
	uploadDir string
}

func NewProfileHandler(db *database.Database, uploadDir string) *ProfileHandler {
	return &ProfileHandler{db: db, uploadDir: uploadDir}
}

// GetUserProfile возвращает публичные поля профиля
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	username := c.Param("username")

	if !models.IsValidUsername(username) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid username"})
		return
	}

	user, err := h.db.GetUserByUsername(username)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        user.Username,
		"gender":          user.Gender,
		"profile_picture": user.ProfilePicture,
		"is_online":       user.IsOnline,
	})
}

// UpdateProfilePicture принимает картинку и обновляет путь в профиле
func (h *ProfileHandler) UpdateProfilePicture(c *gin.Context) {
	username := c.MustGet(middleware.UsernameKey).(string)

	file, err := c.FormFile("profilePicture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxProfilePictureSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isImageExt(ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}

	name := "profile-" + uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	path := "/uploads/" + name
	if err := h.db.UpdateProfilePicture(username, path); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile picture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "profilePicture": path})
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpeg", ".jpg", ".png", ".gif":
		return true
	}
	return false
}
