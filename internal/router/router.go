package router

import (
	"log/slog"
	"time"

	"github.com/focusdeck/internal/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, uploadDir, uploadURLPath string) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	// 静态文件服务，封面图等上传资源
	if uploadDir != "" && uploadURLPath != "" {
		r.Static(uploadURLPath, uploadDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 仪表盘 API 路由
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/tasks", api.ListTasks)
		apiGroup.POST("/tasks", api.CreateTask)
		apiGroup.PATCH("/tasks/:id/toggle", api.ToggleTask)
		apiGroup.DELETE("/tasks/:id", api.DeleteTask)

		apiGroup.GET("/books", api.ListBooks)
		apiGroup.POST("/books", api.CreateBook)
		apiGroup.PATCH("/books/:id/progress", api.UpdateBookProgress)
		apiGroup.POST("/books/:id/notes", api.CreateBookNote)

		apiGroup.GET("/knowledge", api.ListKnowledge)

		apiGroup.GET("/leetcode/metrics", api.ListLeetcodeMetrics)
		apiGroup.PATCH("/leetcode/metrics/:id/solved", api.UpdateSolvedProblems)

		apiGroup.POST("/activity/mark", api.MarkActivity)
		apiGroup.GET("/activity/streak", api.GetStreak)
		apiGroup.GET("/activity/heatmap", api.GetActivityHeatmap)

		apiGroup.POST("/uploads", api.UploadCover)
	}

	return r
}

// requestLogger 以结构化日志记录每个请求，5xx 记 error、4xx 记 warn
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}

		slog.Log(c.Request.Context(), level, "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000.0),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
