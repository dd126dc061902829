package main

import (
	"log/slog"
	"os"

	"github.com/focusdeck/internal/config"
	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/handler"
	"github.com/focusdeck/internal/logger"
	"github.com/focusdeck/internal/router"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log, closer := logger.New(cfg.LogLevel, cfg.LogFile)
	defer closer.Close()
	slog.SetDefault(log)

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		slog.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to resolve timezone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(db.DB, loc, cfg.UploadDir, cfg.UploadURLPath)
	r := router.SetupRouter(api, cfg.UploadDir, cfg.UploadURLPath)

	slog.Info("server starting", slog.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		slog.Error("failed to run server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
