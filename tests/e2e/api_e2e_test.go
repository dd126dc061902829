package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/handler"
	"github.com/focusdeck/internal/router"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServer(t *testing.T) (http.Handler, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Task{}, &db.Book{}, &db.Note{}, &db.LeetcodeMetric{}, &db.KnowledgeBase{}, &db.ActivityLog{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	api := handler.NewAPI(db.DB, time.UTC, t.TempDir(), "/static/uploads")
	r := router.SetupRouter(api, "", "")

	return r, func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func doJSON(t *testing.T, h http.Handler, method, target string, payload any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	decoded := map[string]any{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("failed to decode %s %s response: %v", method, target, err)
		}
	}

	return w, decoded
}

func TestDashboardAPIFlow(t *testing.T) {
	server, cleanup := setupServer(t)
	defer cleanup()

	w, _ := doJSON(t, server, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", w.Code)
	}

	// 空台账时连胜为 0
	w, body := doJSON(t, server, http.MethodGet, "/api/activity/streak", nil)
	if w.Code != http.StatusOK || body["streak"].(float64) != 0 {
		t.Fatalf("streak: expected 0, got %v (status %d)", body["streak"], w.Code)
	}

	// 创建任务并完成，应当带动活跃台账
	w, body = doJSON(t, server, http.MethodPost, "/api/tasks", map[string]any{
		"title": "  完成周报  ",
		"type":  "TODAY",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create task: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	task := body["task"].(map[string]any)
	if task["title"].(string) != "完成周报" {
		t.Fatalf("expected trimmed title, got %q", task["title"])
	}
	taskID := task["id"].(string)

	w, body = doJSON(t, server, http.MethodPatch, "/api/tasks/"+taskID+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d", w.Code)
	}
	toggled := body["task"].(map[string]any)
	if toggled["is_completed"].(bool) != true {
		t.Fatal("expected task completed")
	}
	if _, ok := toggled["completed_at"]; !ok {
		t.Fatal("expected completed_at set")
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/activity/streak", nil)
	if w.Code != http.StatusOK || body["streak"].(float64) != 1 {
		t.Fatalf("streak after completion: expected 1, got %v", body["streak"])
	}

	// 再次切换回未完成：completed_at 清空，打点保留
	w, body = doJSON(t, server, http.MethodPatch, "/api/tasks/"+taskID+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("second toggle: expected 200, got %d", w.Code)
	}
	reverted := body["task"].(map[string]any)
	if reverted["is_completed"].(bool) != false {
		t.Fatal("expected task reverted to incomplete")
	}
	if _, ok := reverted["completed_at"]; ok {
		t.Fatal("expected completed_at cleared")
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/activity/streak", nil)
	if body["streak"].(float64) != 1 {
		t.Fatalf("streak after revert: expected 1, got %v", body["streak"])
	}

	// 藏书阁：建书、钳制进度、加笔记
	w, body = doJSON(t, server, http.MethodPost, "/api/books", map[string]any{
		"title":       "SICP",
		"author":      "Abelson & Sussman",
		"total_pages": 600,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create book: expected 200, got %d", w.Code)
	}
	bookID := body["book"].(map[string]any)["id"].(string)

	w, body = doJSON(t, server, http.MethodPatch, "/api/books/"+bookID+"/progress", map[string]any{
		"next_page": 9999,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update progress: expected 200, got %d", w.Code)
	}
	if page := body["book"].(map[string]any)["current_page"].(float64); page != 600 {
		t.Fatalf("expected progress clamped to 600, got %v", page)
	}

	w, _ = doJSON(t, server, http.MethodPost, "/api/books/"+bookID+"/notes", map[string]any{
		"content": "**经典**",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create note: expected 200, got %d", w.Code)
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/books", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list books: expected 200, got %d", w.Code)
	}
	books := body["books"].([]any)
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	notes := books[0].(map[string]any)["notes"].([]any)
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}

	// 刷题进度：直接预置专题后经 API 更新
	metric := db.LeetcodeMetric{TopicName: "二叉树", TotalProblems: 35, DifficultyLevel: "Medium"}
	if err := db.DB.Create(&metric).Error; err != nil {
		t.Fatalf("failed to seed metric: %v", err)
	}

	w, body = doJSON(t, server, http.MethodPatch, "/api/leetcode/metrics/"+metric.ID+"/solved", map[string]any{
		"solved": 12.7,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update solved: expected 200, got %d", w.Code)
	}
	if solved := body["metric"].(map[string]any)["solved_problems"].(float64); solved != 12 {
		t.Fatalf("expected solved floored to 12, got %v", solved)
	}

	// 删除任务是幂等的
	w, _ = doJSON(t, server, http.MethodDelete, "/api/tasks/"+taskID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}
	w, _ = doJSON(t, server, http.MethodDelete, "/api/tasks/"+taskID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat delete: expected 200, got %d", w.Code)
	}

	w, body = doJSON(t, server, http.MethodGet, "/api/tasks?type=TODAY", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list tasks: expected 200, got %d", w.Code)
	}
	if tasks := body["tasks"].([]any); len(tasks) != 0 {
		t.Fatalf("expected no tasks after delete, got %d", len(tasks))
	}
}
