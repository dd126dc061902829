package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/service"
	"github.com/gin-gonic/gin"
)

type taskPayload struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

// ListTasks 返回指定清单下的任务列表，未完成在前
func (a *API) ListTasks(c *gin.Context) {
	taskType := c.DefaultQuery("type", db.TaskTypeToday)

	tasks, err := a.tasks.List(taskType)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	items := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, taskToPayload(task))
	}

	c.JSON(http.StatusOK, gin.H{"tasks": items})
}

// CreateTask 创建任务
func (a *API) CreateTask(c *gin.Context) {
	var payload taskPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	task, err := a.tasks.Add(service.TaskInput{
		Title:    payload.Title,
		Type:     payload.Type,
		Category: payload.Category,
		Priority: payload.Priority,
	})
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task)})
}

// ToggleTask 翻转任务完成状态，返回更新后的权威记录
func (a *API) ToggleTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	task, err := a.tasks.Toggle(id)
	if err != nil {
		handleTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskToPayload(*task)})
}

// DeleteTask 删除任务，重复删除同样返回成功
func (a *API) DeleteTask(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的任务ID")
		return
	}

	if err := a.tasks.Delete(id); err != nil {
		respondError(c, http.StatusInternalServerError, "删除任务失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func taskToPayload(task db.Task) gin.H {
	item := gin.H{
		"id":           task.ID,
		"title":        task.Title,
		"is_completed": task.IsCompleted,
		"type":         task.Type,
		"category":     task.Category,
		"priority":     task.Priority,
		"created_at":   task.CreatedAt.Format(time.RFC3339),
	}

	if task.CompletedAt != nil {
		item["completed_at"] = task.CompletedAt.Format(time.RFC3339)
	}

	return item
}

func handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, "任务不存在")
	case errors.Is(err, service.ErrTaskTitleRequired):
		respondError(c, http.StatusBadRequest, "任务标题不能为空")
	case errors.Is(err, service.ErrInvalidTaskField):
		respondError(c, http.StatusBadRequest, "任务字段取值无效")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
