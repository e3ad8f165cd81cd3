package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/avdeyev/duochat/internal/chat"
	"github.com/avdeyev/duochat/internal/database"
	"github.com/avdeyev/duochat/internal/handlers"
	"github.com/avdeyev/duochat/internal/notify"
	"github.com/avdeyev/duochat/pkg/auth"
)

const uploadDir = "uploads"

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Reaper     *chat.Reaper
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn, err := database.Connect()
	if err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}
	if err := dbConn.Seed(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Cannot create upload dir: %v", err)
	}

	notifier := notify.FromEnv()

	directory := chat.NewDirectory()
	chatH := chat.NewHandler(directory, dbConn, notifier)
	reaper := chat.NewReaper(directory, dbConn, chat.DefaultSessionTimeout, chat.DefaultReapInterval)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	historyH := handlers.NewHistoryHandler(dbConn)
	profileH := handlers.NewProfileHandler(dbConn, uploadDir)
	uploadH := handlers.NewUploadHandler(uploadDir)
	exportH := handlers.NewExportHandler(dbConn, notifier)
	wsH := handlers.NewWebSocketHandler(chatH)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, historyH, profileH, uploadH, exportH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Reaper:     reaper,
	}
}

func (s *Server) Run() {
	go s.Reaper.Run()
	defer s.Reaper.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
