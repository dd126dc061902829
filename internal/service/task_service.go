package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/focusdeck/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound 在指定任务不存在时返回
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskTitleRequired 在标题去空格后为空时返回
	ErrTaskTitleRequired = errors.New("task title is required")
	// ErrInvalidTaskField 当类型/分类/优先级取值非法时返回
	ErrInvalidTaskField = errors.New("invalid task field")
)

// TaskService 负责任务清单的增删改查
// 排序规则：未完成在前，组内按创建时间倒序
type TaskService struct {
	db       *gorm.DB
	activity *ActivityService
}

// TaskInput 定义创建任务时可配置字段
type TaskInput struct {
	Title    string
	Type     string
	Category string
	Priority string
}

// NewTaskService 构造 TaskService
func NewTaskService(gdb *gorm.DB, activity *ActivityService) *TaskService {
	return &TaskService{db: gdb, activity: activity}
}

// List 返回指定清单类型下的全部任务
func (s *TaskService) List(taskType string) ([]db.Task, error) {
	if !validTaskType(taskType) {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidTaskField, taskType)
	}

	var tasks []db.Task
	if err := s.db.Where("type = ?", taskType).
		Order("is_completed ASC, created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// Add 新建任务，标题去空格后不得为空
func (s *TaskService) Add(input TaskInput) (*db.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTaskTitleRequired
	}

	if !validTaskType(input.Type) {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidTaskField, input.Type)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = db.TaskCategoryProject
	}
	if !validTaskCategory(category) {
		return nil, fmt.Errorf("%w: unsupported category %s", ErrInvalidTaskField, input.Category)
	}

	priority := strings.TrimSpace(input.Priority)
	if priority == "" {
		priority = db.TaskPriorityMedium
	}
	if !validTaskPriority(priority) {
		return nil, fmt.Errorf("%w: unsupported priority %s", ErrInvalidTaskField, input.Priority)
	}

	task := db.Task{
		Title:    title,
		Type:     input.Type,
		Category: category,
		Priority: priority,
	}

	if err := s.db.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return &task, nil
}

// Toggle 翻转完成状态并原子维护 CompletedAt。
// 首次完成时在活跃台账记一笔当日打点；取消完成不回收打点。
func (s *TaskService) Toggle(id string) (*db.Task, error) {
	var task db.Task

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("find task: %w", err)
		}

		task.IsCompleted = !task.IsCompleted
		if task.IsCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}

		if err := tx.Save(&task).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if task.IsCompleted && s.activity != nil {
		// 打点失败不影响任务本身的状态切换
		if _, err := s.activity.MarkToday(); err != nil {
			slog.Warn("failed to mark activity on task completion",
				slog.String("task_id", task.ID), slog.String("error", err.Error()))
		}
	}

	return &task, nil
}

// Delete 删除任务；id 不存在时静默成功，保证删除操作幂等
func (s *TaskService) Delete(id string) error {
	if err := s.db.Delete(&db.Task{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

func validTaskType(taskType string) bool {
	switch taskType {
	case db.TaskTypeToday, db.TaskTypeTomorrow, db.TaskTypeWeek:
		return true
	}
	return false
}

func validTaskCategory(category string) bool {
	switch category {
	case db.TaskCategoryProject, db.TaskCategoryLeetcode, db.TaskCategorySport, db.TaskCategoryStudy:
		return true
	}
	return false
}

func validTaskPriority(priority string) bool {
	switch priority {
	case db.TaskPriorityLow, db.TaskPriorityMedium, db.TaskPriorityHigh:
		return true
	}
	return false
}
