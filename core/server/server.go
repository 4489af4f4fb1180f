package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/Ridhima028/ai-calendar-assistant/core/cache"
	"github.com/Ridhima028/ai-calendar-assistant/core/config"
	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/database"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/middleware"
	"github.com/Ridhima028/ai-calendar-assistant/modules/auth"
	"github.com/Ridhima028/ai-calendar-assistant/modules/calendar"
	"github.com/Ridhima028/ai-calendar-assistant/modules/chat"
	"github.com/Ridhima028/ai-calendar-assistant/modules/rag"
	ragworker "github.com/Ridhima028/ai-calendar-assistant/modules/rag/worker"
	nlpservice "github.com/Ridhima028/ai-calendar-assistant/modules/nlp/service"
)

// Run loads configuration, wires every module and serves until interrupted.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.SQLx().Close()

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	cacheStore, err := cache.NewCache(cfg.Redis, sessionTTL)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	e.GET("/health", func(c echo.Context) error {
		if err := cacheStore.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := middleware.NewMiddleware(cacheStore, cfg.Session.Secret, sessionTTL)
	gemini := nlpservice.NewGeminiClient(cfg.Gemini)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	tasks := asynq.NewClientFromRedisClient(cacheStore.Client())
	defer tasks.Close()

	store, answers := rag.Init(e, gemini, tasks)

	auth.Init(e, db, mw)
	authService := auth.GetService()
	calendarService := calendar.Init(e, authService, mw)
	chat.Init(e, db, mw, gemini, calendarService, answers)

	worker := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 2})
	mux := asynq.NewServeMux()
	mux.Handle(constants.TaskRAGReindex, ragworker.NewReindexHandler(store))
	go func() {
		if err := worker.Run(mux); err != nil {
			logger.Error("Server:Worker:Run:Error", "error", err)
		}
	}()

	// Warm the document index without blocking startup.
	if _, err := tasks.Enqueue(ragworker.NewReindexTask()); err != nil {
		logger.Warn("Server:EnqueueReindex:Error", "error", err)
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server:Start", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server:Shutdown:Begin")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()

	worker.Shutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info("Server:Shutdown:Done")
	return nil
}
