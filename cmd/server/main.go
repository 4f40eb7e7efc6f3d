package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jengzang/igs-backend-go/internal/api"
	"github.com/jengzang/igs-backend-go/internal/config"
	"github.com/jengzang/igs-backend-go/internal/database"
	"github.com/jengzang/igs-backend-go/internal/floorplan"
	"github.com/jengzang/igs-backend-go/internal/logger"
	"github.com/jengzang/igs-backend-go/internal/repository"
	"github.com/jengzang/igs-backend-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zl.Sync()

	// 初始化数据库
	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		zl.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	loader := floorplan.NewLoader(cfg.FetchTimeout)
	sessionService, err := service.NewSessionService(
		repository.NewSessionRepository(db),
		repository.NewFileRepository(db),
		loader,
		service.NewExampleSource(cfg.ExamplesDir, cfg.ExamplesURL, loader),
		service.SessionOptions{Annotator: cfg.Annotator, MinStopLength: cfg.MinStopLength},
		zl,
	)
	if err != nil {
		zl.Fatal("failed to create session service", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化路由
	router := api.SetupRouter(cfg, sessionService, zl, ctx.Done())
	srv := &http.Server{Addr: cfg.Port, Handler: router}

	// 启动服务器
	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", "port", cfg.Port, "db", cfg.DBPath, "annotator", cfg.Annotator)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		zl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zl.Error("server shutdown failed", "error", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", "error", err)
		}
	}
}
