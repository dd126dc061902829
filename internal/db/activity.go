package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityLog 记录每日活跃打点
// Date 为当日零点时间戳，唯一索引保证每天至多一条，只增不删
type ActivityLog struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Date      time.Time `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

// TableName 保留源数据库的表名
func (ActivityLog) TableName() string {
	return "user_activity_log"
}

// BeforeCreate 为新纪录分配字符串主键
func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
