package db

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 知识库条目类型
const (
	KnowledgeTypeBook       = "BOOK"
	KnowledgeTypeExperiment = "EXPERIMENT"
)

// KnowledgeBase 定义知识库条目，由 seedctl 离线填充，API 侧只读
type KnowledgeBase struct {
	ID       string `gorm:"primaryKey;size:36"`
	Title    string `gorm:"not null"`
	Type     string `gorm:"size:16;not null"`
	Status   string `gorm:"size:32;not null"`
	CoverURL *string
	Notes    *string `gorm:"type:text"`
	Progress int     `gorm:"not null;default:0"`
}

// TableName 保留源数据库的表名
func (KnowledgeBase) TableName() string {
	return "knowledge_base"
}

// BeforeCreate 为新纪录分配字符串主键
func (k *KnowledgeBase) BeforeCreate(*gorm.DB) error {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	return nil
}
