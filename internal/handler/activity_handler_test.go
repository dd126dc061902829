package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/focusdeck/internal/db"
	"github.com/gin-gonic/gin"
)

func TestMarkActivityIdempotentOverHTTP(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/activity/mark", nil)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = req

		api.MarkActivity(c)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	var count int64
	if err := db.DB.Model(&db.ActivityLog{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 entry, got %d", count)
	}
}

func TestGetStreakAfterMarking(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	// 昨天和今天各一笔
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, date := range []time.Time{today, today.AddDate(0, 0, -1)} {
		entry := db.ActivityLog{Date: date}
		if err := db.DB.Create(&entry).Error; err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/activity/streak", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	api.GetStreak(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Streak int `json:"streak"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", resp.Streak)
	}
}

func TestGetActivityHeatmap(t *testing.T) {
	api, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 3, 10} {
		entry := db.ActivityLog{Date: today.AddDate(0, 0, -offset)}
		if err := db.DB.Create(&entry).Error; err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/activity/heatmap", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	api.GetActivityHeatmap(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Days       []string `json:"days"`
		ActiveDays int      `json:"active_days"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ActiveDays != 3 || len(resp.Days) != 3 {
		t.Fatalf("expected 3 active days, got %d (%v)", resp.ActiveDays, resp.Days)
	}
}
