package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/focusdeck/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrBookNotFound 在指定书籍不存在时返回
	ErrBookNotFound = errors.New("book not found")
	// ErrBookTitleRequired 在书名去空格后为空时返回
	ErrBookTitleRequired = errors.New("book title is required")
	// ErrNoteContentRequired 在笔记内容去空格后为空时返回
	ErrNoteContentRequired = errors.New("note content is required")
)

// VaultService 负责藏书阁书籍、读书笔记与知识库条目
type VaultService struct {
	db *gorm.DB
}

// BookInput 定义创建书籍时可配置字段
type BookInput struct {
	Title      string
	Author     string
	CoverURL   string
	TotalPages int
}

// NewVaultService 构造 VaultService
func NewVaultService(gdb *gorm.DB) *VaultService {
	return &VaultService{db: gdb}
}

// ListBooks 返回全部书籍及其笔记，新书在前
func (s *VaultService) ListBooks() ([]db.Book, error) {
	var books []db.Book
	if err := s.db.Preload("Notes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at DESC")
	}).Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// AddBook 新建书籍，初始状态 READING、进度 0
func (s *VaultService) AddBook(input BookInput) (*db.Book, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrBookTitleRequired
	}

	totalPages := input.TotalPages
	if totalPages < 0 {
		totalPages = 0
	}

	book := db.Book{
		Title:      title,
		Author:     strings.TrimSpace(input.Author),
		CoverURL:   strings.TrimSpace(input.CoverURL),
		TotalPages: totalPages,
		Status:     db.BookStatusReading,
	}

	if err := s.db.Create(&book).Error; err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &book, nil
}

// UpdateProgress 更新阅读进度，输入钳制到 [0, TotalPages]
func (s *VaultService) UpdateProgress(bookID string, nextPage float64) (*db.Book, error) {
	var book db.Book
	if err := s.db.First(&book, "id = ?", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}

	book.CurrentPage = clampToRange(nextPage, book.TotalPages)

	if err := s.db.Save(&book).Error; err != nil {
		return nil, fmt.Errorf("update book progress: %w", err)
	}
	return &book, nil
}

// AddNote 为书籍追加一条笔记，内容去空格后不得为空
func (s *VaultService) AddNote(bookID, content string) (*db.Note, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, ErrNoteContentRequired
	}

	var count int64
	if err := s.db.Model(&db.Book{}).Where("id = ?", bookID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check book: %w", err)
	}
	if count == 0 {
		return nil, ErrBookNotFound
	}

	note := db.Note{BookID: bookID, Content: text}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return &note, nil
}

// ListKnowledge 返回全部知识库条目，按标题排序
func (s *VaultService) ListKnowledge() ([]db.KnowledgeBase, error) {
	var entries []db.KnowledgeBase
	if err := s.db.Order("title ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list knowledge base: %w", err)
	}
	return entries, nil
}

// clampToRange 将输入规整为非负整数并钳制到 [0, limit]。
// 非有限值回退为 0，小数向下取整，负的 limit 按 0 处理。
func clampToRange(value float64, limit int) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	v := int(math.Floor(value))
	if v < 0 {
		v = 0
	}
	if limit < 0 {
		limit = 0
	}
	if v > limit {
		v = limit
	}
	return v
}
