package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/napat/work-monitor-api/internal/config"
	"github.com/napat/work-monitor-api/internal/constants"
	"github.com/napat/work-monitor-api/internal/database"
	"github.com/napat/work-monitor-api/internal/handlers"
	"github.com/napat/work-monitor-api/internal/logging"
	"github.com/napat/work-monitor-api/internal/middleware"
	"github.com/napat/work-monitor-api/internal/repository"
	"github.com/napat/work-monitor-api/internal/services"
	"github.com/napat/work-monitor-api/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logging.Log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logging.Log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		logging.Log.Fatalf("Failed to add indexes: %v", err)
	}

	// External blob storage (deletes stay disabled without credentials)
	blobStore, err := storage.NewOSSStore(cfg)
	if err != nil {
		logging.Log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logging.Log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	feedRepo := repository.NewFeedRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, blobStore)
	taskService := services.NewTaskService(taskRepo)
	feedService := services.NewFeedService(feedRepo, taskRepo, projectRepo, blobStore)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService, feedService)
	fileHandler := handlers.NewFileHandler(feedService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Work Monitor API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.POST("/join", projectHandler.JoinProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.POST("/:id/leave", middleware.RequireProjectAccess(), projectHandler.LeaveProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.DeleteProject)
			projects.POST("/:id/tasks", middleware.RequireProjectAccess(), taskHandler.CreateTask)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTaskFeed)
			tasks.POST("/:id/status", middleware.RequireTaskAccess(), taskHandler.SetStatus)
			tasks.POST("/:id/progress", middleware.RequireTaskAccess(), taskHandler.SetProgress)
			tasks.POST("/:id/updates", middleware.RequireTaskAccess(), taskHandler.PostUpdate)
			tasks.POST("/:id/files", middleware.RequireTaskAccess(), fileHandler.RegisterFile)
			tasks.DELETE("/:id/files/:file_id", middleware.RequireTaskAccess(), fileHandler.DeleteFile)
		}

		// Update routes (protected)
		updates := api.Group("/updates")
		updates.Use(middleware.RequireAuth())
		{
			updates.GET("/:id", taskHandler.GetUpdate)
		}
	}

	// Start server
	logging.Log.Info("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		logging.Log.Fatalf("Failed to start server: %v", err)
	}
}
