package handler

import (
	"errors"
	"net/http"

	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/service"
	"github.com/gin-gonic/gin"
)

type solvedPayload struct {
	Solved float64 `json:"solved"`
}

// ListLeetcodeMetrics 返回刷题专题列表
func (a *API) ListLeetcodeMetrics(c *gin.Context) {
	metrics, err := a.leetcode.ListMetrics()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取刷题统计失败")
		return
	}

	items := make([]gin.H, 0, len(metrics))
	for _, metric := range metrics {
		items = append(items, metricToPayload(metric))
	}

	c.JSON(http.StatusOK, gin.H{"metrics": items})
}

// UpdateSolvedProblems 更新专题已解题数，越界输入钳制到合法区间
func (a *API) UpdateSolvedProblems(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的专题ID")
		return
	}

	var payload solvedPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	metric, err := a.leetcode.UpdateSolved(id, payload.Solved)
	if err != nil {
		if errors.Is(err, service.ErrMetricNotFound) {
			respondError(c, http.StatusNotFound, "专题不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "操作失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"metric": metricToPayload(*metric)})
}

func metricToPayload(metric db.LeetcodeMetric) gin.H {
	return gin.H{
		"id":               metric.ID,
		"topic_name":       metric.TopicName,
		"total_problems":   metric.TotalProblems,
		"solved_problems":  metric.SolvedProblems,
		"difficulty_level": metric.DifficultyLevel,
	}
}
