package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"portfolio-backend/internal/assistant"
	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/openai"
	"portfolio-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Select the storage backend. The handlers only ever see the contract,
	// so the two backends are interchangeable here.
	var store storage.Storage
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := storage.Connect(cfg.DatabaseURL, cfg.DBConnectAttempts, cfg.DBConnectDelay)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := database.NewMigrator(db).Run(); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}

		store = storage.NewPostgresStorage(db)
		log.Println("Using postgres storage backend")
	case config.BackendMemory:
		store = storage.NewMemoryStorage()
		log.Println("Using in-memory storage backend (state is lost on restart)")
	}

	openaiClient := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	assistantService := assistant.NewService(openaiClient, rng)

	// Each read-heavy handler owns its own short-lived cache so write
	// invalidation in one section cannot evict another section's listings.
	projectsHandler := handlers.NewProjectsHandler(store, cache.New(5*time.Minute, 10*time.Minute))
	skillsHandler := handlers.NewSkillsHandler(store, cache.New(5*time.Minute, 10*time.Minute))
	resumeHandler := handlers.NewResumeHandler(store, cache.New(5*time.Minute, 10*time.Minute))
	messagesHandler := handlers.NewMessagesHandler(store, assistantService)
	welcomeHandler := handlers.NewWelcomeHandler(assistantService)
	authHandler := handlers.NewAuthHandler(store, cfg)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api")

	// Public reads and the contact form
	api.GET("/projects", projectsHandler.List)
	api.GET("/projects/:id", projectsHandler.Get)
	api.GET("/skills", skillsHandler.List)
	api.GET("/resume", resumeHandler.List)
	api.POST("/messages", messagesHandler.Create)
	api.GET("/welcome", welcomeHandler.Welcome)
	api.POST("/messages/analyze", messagesHandler.Analyze)
	api.POST("/login", authHandler.Login)

	// Admin routes
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.POST("/projects", projectsHandler.Create)
	admin.PUT("/projects/:id", projectsHandler.Update)
	admin.DELETE("/projects/:id", projectsHandler.Delete)
	admin.POST("/skills", skillsHandler.Create)
	admin.PUT("/skills/:id", skillsHandler.Update)
	admin.DELETE("/skills/:id", skillsHandler.Delete)
	admin.POST("/resume", resumeHandler.Create)
	admin.PUT("/resume/:id", resumeHandler.Update)
	admin.DELETE("/resume/:id", resumeHandler.Delete)
	admin.GET("/messages", messagesHandler.List)
	admin.GET("/messages/:id", messagesHandler.Get)
	admin.PUT("/messages/:id/read", messagesHandler.MarkRead)
	admin.DELETE("/messages/:id", messagesHandler.Delete)
	admin.POST("/users", authHandler.CreateUser)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server exited")
}
