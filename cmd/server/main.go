package main

import (
	"context"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/admintools/user-management-api/internal/config"
	"github.com/admintools/user-management-api/internal/constants"
	"github.com/admintools/user-management-api/internal/database"
	"github.com/admintools/user-management-api/internal/handlers"
	"github.com/admintools/user-management-api/internal/middleware"
	"github.com/admintools/user-management-api/internal/repository"
	"github.com/admintools/user-management-api/internal/services"
	"github.com/admintools/user-management-api/internal/validation"
)

func main() {
	// Load configuration
	cfg, err := config.Load(context.Background())
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure logging
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Register custom request validators
	if err := validation.Register(); err != nil {
		logrus.Fatalf("Failed to register validators: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	permissionRepo := repository.NewPermissionRepository(database.GetDB())
	userPermissionRepo := repository.NewUserPermissionRepository(database.GetDB())
	userPermissionService := services.NewUserPermissionService(userRepo, permissionRepo, userPermissionRepo)
	authService := services.NewAuthService(userRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userRepo, userPermissionService)
	permissionHandler := handlers.NewPermissionHandler(permissionRepo)
	authHandler := handlers.NewAuthHandler(authService)

	// Initialize Gin router
	r := gin.Default()

	// Session middleware and auth routes only when authentication is enabled
	if cfg.AuthEnabled {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err := redisStore.NewStore(
			10,
			"tcp",
			redisAddr,
			"",
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			logrus.Fatalf("Failed to create Redis session store: %v", err)
		}
		isProduction := cfg.GinMode == "release"
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7, // 7 days
			HttpOnly: true,
			Secure:   isProduction,
			SameSite: 2, // SameSite=Lax
		})
		r.Use(sessions.Sessions(constants.SessionCookieName, store))

		auth := r.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "User Management API is running",
		})
	})

	// User routes
	users := r.Group("/users")
	if cfg.AuthEnabled {
		users.Use(middleware.RequireAuth())
	}
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DeleteUser)
	}

	// Permission assignment routes. Gin requires a consistent wildcard name
	// per path segment, so :id carries the user id here as well.
	userPermissions := r.Group("/users/:id/permissions")
	if cfg.AuthEnabled {
		userPermissions.Use(middleware.RequireAuth())
	}
	{
		userPermissions.GET("", userHandler.ListUserPermissions)
		userPermissions.POST("/:permissionId", userHandler.AddUserPermission)
		userPermissions.DELETE("/:permissionId", userHandler.RemoveUserPermission)
	}

	// Permission routes
	permissions := r.Group("/permissions")
	if cfg.AuthEnabled {
		permissions.Use(middleware.RequireAuth())
	}
	{
		permissions.GET("", permissionHandler.ListPermissions)
		permissions.POST("", permissionHandler.CreatePermission)
		permissions.GET("/:id", permissionHandler.GetPermission)
		permissions.PUT("/:id", permissionHandler.UpdatePermission)
		permissions.DELETE("/:id", permissionHandler.DeletePermission)
	}

	// Start server
	logrus.Infof("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
