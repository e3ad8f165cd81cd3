package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/avdeyev/duochat/internal/handlers"
	"github.com/avdeyev/duochat/internal/middleware"
	"github.com/avdeyev/duochat/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	historyH *handlers.HistoryHandler,
	profileH *handlers.ProfileHandler,
	uploadH *handlers.UploadHandler,
	exportH *handlers.ExportHandler,
	wsH *handlers.WebSocketHandler,
) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	r.POST("/login", authH.Login)
	r.Static("/uploads", "./"+uploadDir)

	// Живой канал; токен приходит в query
	r.GET("/ws", middleware.WSAuthMiddleware(jwtMgr, rdb), wsH.HandleWebSocket)

	authorized := r.Group("/", middleware.AuthMiddleware(jwtMgr, rdb))
	{
		authorized.POST("/logout", authH.Logout)
		authorized.POST("/change-pin", authH.ChangePin)
		authorized.GET("/messages/:user1/:user2", historyH.GetConversation)
		authorized.GET("/user-profile/:username", profileH.GetUserProfile)
		authorized.POST("/update-profile-picture", profileH.UpdateProfilePicture)
		authorized.POST("/upload", uploadH.Upload)
		authorized.POST("/clear-chat", exportH.ClearChat)
	}
}
