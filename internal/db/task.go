package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 任务清单类型：今日 / 明日 / 本周
const (
	TaskTypeToday    = "TODAY"
	TaskTypeTomorrow = "TOMORROW"
	TaskTypeWeek     = "WEEK"
)

// 任务分类，默认 PROJECT
const (
	TaskCategoryProject  = "PROJECT"
	TaskCategoryLeetcode = "LEETCODE"
	TaskCategorySport    = "SPORT"
	TaskCategoryStudy    = "STUDY"
)

// 任务优先级，默认 MEDIUM
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// Task 定义仪表盘任务模型
// CompletedAt 仅在 IsCompleted 为 true 时非空，两者在切换时原子更新
type Task struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	IsCompleted bool   `gorm:"not null;default:false"`
	Type        string `gorm:"size:16;index;not null"`
	Category    string `gorm:"size:16;not null;default:PROJECT"`
	Priority    string `gorm:"size:16;not null;default:MEDIUM"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// TableName 保留源数据库的表名
func (Task) TableName() string {
	return "Task"
}

// BeforeCreate 为新纪录分配字符串主键
func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
