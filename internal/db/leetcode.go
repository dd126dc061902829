package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeetcodeMetric 按专题统计刷题进度
// SolvedProblems 在每次更新时钳制到 [0, TotalProblems]
type LeetcodeMetric struct {
	ID              string `gorm:"primaryKey;size:36"`
	TopicName       string `gorm:"not null"`
	TotalProblems   int    `gorm:"not null;default:0"`
	SolvedProblems  int    `gorm:"not null;default:0"`
	DifficultyLevel string `gorm:"size:32"`
}

// TableName 保留源数据库的表名
func (LeetcodeMetric) TableName() string {
	return "leetcode_metrics"
}

// BeforeCreate 为新纪录分配字符串主键
func (m *LeetcodeMetric) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
