package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/services"
	"taskboard/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	taskStore, userStore, err := openStores(cfg)
	if err != nil {
		log.Fatalf("failed to open stores: %v", err)
	}

	var taskService services.TaskService = services.NewTaskService(taskStore)
	authService := services.NewAuthService(userStore, cfg.Auth)

	if cfg.Redis.Enabled {
		redisCache := cache.NewRedisCache(&cache.CacheConfig{
			Addr:         cfg.GetRedisAddr(),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err := redisCache.Health(); err != nil {
			log.Printf("redis unavailable, list cache disabled: %v", err)
		} else {
			taskService = services.NewCachedTaskService(taskService, redisCache, cfg.Redis.ListTTL)
			defer redisCache.Close()
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit)
		defer limiter.Stop()
	}

	router := handlers.NewRouter(handlers.RouterDeps{
		TaskService: taskService,
		AuthService: authService,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func openStores(cfg *config.Config) (store.TaskStore, store.UserStore, error) {
	if cfg.Store.Driver == "file" {
		taskStore, err := store.NewFileTaskStore(cfg.Store.TasksFile)
		if err != nil {
			return nil, nil, err
		}
		userStore, err := store.NewFileUserStore(cfg.Store.UsersFile)
		if err != nil {
			return nil, nil, err
		}
		return taskStore, userStore, nil
	}

	db, err := store.OpenGorm(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	return store.NewGormTaskStore(db), store.NewGormUserStore(db), nil
}
