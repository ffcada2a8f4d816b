package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"taskboard/internal/middleware"
	"taskboard/internal/monitoring"
	"taskboard/internal/services"
)

type RouterDeps struct {
	TaskService services.TaskService
	AuthService services.AuthService
	RateLimiter *middleware.RateLimiter
}

// NewRouter wires the full REST surface under /api.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.Default())
	if deps.RateLimiter != nil {
		router.Use(deps.RateLimiter.Middleware())
	}
	router.NoRoute(middleware.NotFoundHandler())

	taskHandler := NewTaskHandler(deps.TaskService)
	authHandler := NewAuthHandler(deps.AuthService)
	healthHandler := NewHealthHandler()

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/metrics", healthHandler.Metrics)

		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/auth/me", middleware.RequireAuth(deps.AuthService), authHandler.Me)

		api.GET("/tasks", taskHandler.GetTasks)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}

	return router
}
