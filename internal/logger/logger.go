package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New 构造应用日志器：控制台彩色输出，可选滚动 JSON 文件。
// logFile 为空时仅输出到控制台；返回的 Closer 用于关闭文件写入器。
func New(level, logFile string) (*slog.Logger, io.Closer) {
	lvl := parseLevel(level)

	console := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: "15:04:05",
	})

	if logFile == "" {
		return slog.New(console), io.NopCloser(nil)
	}

	if dir := filepath.Dir(logFile); dir != "." && dir != "" {
		os.MkdirAll(dir, 0o755)
	}

	// 滚动 JSON 文件
	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		LocalTime:  true,
	}
	file := slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: lvl})

	return slog.New(&multiHandler{handlers: []slog.Handler{file, console}}), lj
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// multiHandler 将日志记录扇出到多个 slog handler
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
