package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 书籍阅读状态
const (
	BookStatusReading  = "READING"
	BookStatusFinished = "FINISHED"
)

// Book 定义藏书阁书籍模型
// CurrentPage 始终被钳制在 [0, TotalPages] 区间
type Book struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"not null"`
	Author      string
	CoverURL    string
	TotalPages  int    `gorm:"not null;default:0"`
	CurrentPage int    `gorm:"not null;default:0"`
	Status      string `gorm:"size:16;not null;default:READING"`
	Notes       []Note `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BeforeCreate 为新纪录分配字符串主键
func (b *Book) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Note 记录书籍读书笔记，只增不改
type Note struct {
	ID        string `gorm:"primaryKey;size:36"`
	BookID    string `gorm:"size:36;index;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// BeforeCreate 为新纪录分配字符串主键
func (n *Note) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
