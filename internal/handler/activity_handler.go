package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

// MarkActivity 为今天补一笔活跃记录，同日重复调用幂等
func (a *API) MarkActivity(c *gin.Context) {
	entry, err := a.activity.MarkToday()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "记录活跃失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       entry.Date.Format(dateFormat),
		"created_at": entry.CreatedAt.Format(time.RFC3339),
	})
}

// GetStreak 返回当前连续活跃天数
func (a *API) GetStreak(c *gin.Context) {
	streak, err := a.activity.CurrentStreak()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "计算连胜失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

// GetActivityHeatmap 返回过去一年的活跃热力图数据
func (a *API) GetActivityHeatmap(c *gin.Context) {
	end := a.activity.Today()
	start := end.AddDate(0, 0, -364)

	entries, err := a.activity.Range(start, end)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取热力图数据失败")
		return
	}

	days := make([]string, 0, len(entries))
	for _, entry := range entries {
		days = append(days, entry.Date.Format(dateFormat))
	}

	c.JSON(http.StatusOK, gin.H{
		"range": gin.H{
			"start": start.Format(dateFormat),
			"end":   end.Format(dateFormat),
		},
		"days":         days,
		"active_days":  len(days),
		"generated_at": time.Now().Format(time.RFC3339),
	})
}
