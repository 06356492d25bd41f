package main

import (
	"log"
	"os"
	"time"

	"rootlink/internal/db"
	"rootlink/internal/engine"
	"rootlink/internal/handlers"
	"rootlink/internal/middleware"
	"rootlink/internal/services"
	"rootlink/internal/store"
	"rootlink/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// 存储层 + 投票核心
	lockTimeout := 3 * time.Second
	if ms := utils.StringToInt(os.Getenv("LOCK_TIMEOUT_MS")); ms > 0 {
		lockTimeout = time.Duration(ms) * time.Millisecond
	}
	storeDB := store.New(db.DB, store.WithLockTimeout(lockTimeout))
	core := engine.New(storeDB)

	// 初始化异步热度服务
	services.GetScoreboard().StartScheduledRefresh()

	// Initialize Gin
	r := gin.Default()

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler(core)
	voteHandler := handlers.NewVoteHandler(core)
	feedHandler := handlers.NewFeedHandler()
	userHandler := handlers.NewUserHandler()

	// Public Routes
	r.GET("/feed/new", feedHandler.New)
	r.GET("/feed/:mode", feedHandler.List)
	r.GET("/p/:pid", postHandler.Detail)
	r.GET("/p/:pid/comments", commentHandler.ListByPost)
	r.GET("/comments/:cid/subtree", commentHandler.Subtree)
	r.GET("/u/:id", userHandler.Profile)
	r.GET("/u/:id/karma", userHandler.KarmaLogs)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/submit", postHandler.Create)
		authorized.POST("/p/:pid/comments", commentHandler.Create)
		authorized.POST("/vote/:kind/:id", voteHandler.Cast)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("RootLink server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
