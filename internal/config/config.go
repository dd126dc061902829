package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	Timezone      string
	LogFile       string
	LogLevel      string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "focusdeck.db"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	// 时区决定“今天”的零点，影响连胜计算；默认跟随进程本地时区
	timezone := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if timezone == "" {
		timezone = "Local"
	}

	logFile := strings.TrimSpace(os.Getenv("LOG_FILE"))

	logLevel := strings.TrimSpace(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		GinMode:       ginMode,
		UploadDir:     uploadDir,
		UploadURLPath: uploadURLPath,
		Timezone:      timezone,
		LogFile:       logFile,
		LogLevel:      logLevel,
	}
}

// Validate 校验配置项取值是否合法。
func (c AppConfig) Validate() error {
	if err := validation.ValidateStruct(&c,
		validation.Field(&c.ListenAddr, validation.Required),
		validation.Field(&c.DatabasePath, validation.Required),
		validation.Field(&c.GinMode, validation.In("debug", "release", "test")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return err
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}

	return nil
}

// Location 解析配置的时区。
func (c AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
