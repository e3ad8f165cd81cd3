package handlers

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avdeyev/duochat/internal/handlers/dto"
)

const maxUploadSize = 50 * 1024 * 1024 // 50MB

var allowedUploadExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".mp4": true, ".mov": true, ".avi": true,
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

var allowedUploadMimes = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/gif": true,
	"video/mp4": true, "video/quicktime": true, "video/x-msvideo": true,
	"application/pdf": true, "application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

type UploadHandler struct {
	uploadDir string
}

func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// Upload сохраняет вложение и возвращает его описание для события message
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	// И расширение, и заявленный mime должны попасть в белый список
	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimeType := file.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	if !allowedUploadExts[ext] || !allowedUploadMimes[mimeType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Allowed: images, videos, documents"})
		return
	}

	sanitized := unsafeNameChars.ReplaceAllString(file.Filename, "_")
	name := uuid.NewString() + "-" + sanitized

	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File upload failed"})
		return
	}

	c.JSON(http.StatusOK, dto.FileData{
		Path:         "/uploads/" + name,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Size:         file.Size,
	})
}
