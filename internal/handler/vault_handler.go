package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/focusdeck/internal/db"
	"github.com/focusdeck/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

type bookPayload struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverURL   string `json:"cover_url"`
	TotalPages int    `json:"total_pages"`
}

type progressPayload struct {
	NextPage float64 `json:"next_page"`
}

type notePayload struct {
	Content string `json:"content"`
}

// ListBooks 返回藏书阁书籍及其笔记
func (a *API) ListBooks(c *gin.Context) {
	books, err := a.vault.ListBooks()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取书籍列表失败")
		return
	}

	items := make([]gin.H, 0, len(books))
	for _, book := range books {
		items = append(items, bookToPayload(book))
	}

	c.JSON(http.StatusOK, gin.H{"books": items})
}

// CreateBook 新建书籍
func (a *API) CreateBook(c *gin.Context) {
	var payload bookPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	book, err := a.vault.AddBook(service.BookInput{
		Title:      payload.Title,
		Author:     payload.Author,
		CoverURL:   payload.CoverURL,
		TotalPages: payload.TotalPages,
	})
	if err != nil {
		handleVaultError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": bookToPayload(*book)})
}

// UpdateBookProgress 更新阅读进度，越界输入钳制到合法区间
func (a *API) UpdateBookProgress(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的书籍ID")
		return
	}

	var payload progressPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	book, err := a.vault.UpdateProgress(id, payload.NextPage)
	if err != nil {
		handleVaultError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": bookToPayload(*book)})
}

// CreateBookNote 为书籍追加读书笔记
func (a *API) CreateBookNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "无效的书籍ID")
		return
	}

	var payload notePayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	note, err := a.vault.AddNote(id, payload.Content)
	if err != nil {
		handleVaultError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": noteToPayload(*note)})
}

// ListKnowledge 返回知识库条目
func (a *API) ListKnowledge(c *gin.Context) {
	entries, err := a.vault.ListKnowledge()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取知识库失败")
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, entry := range entries {
		items = append(items, knowledgeToPayload(entry))
	}

	c.JSON(http.StatusOK, gin.H{"entries": items})
}

func bookToPayload(book db.Book) gin.H {
	notes := make([]gin.H, 0, len(book.Notes))
	for _, note := range book.Notes {
		notes = append(notes, noteToPayload(note))
	}

	return gin.H{
		"id":           book.ID,
		"title":        book.Title,
		"author":       book.Author,
		"cover_url":    book.CoverURL,
		"total_pages":  book.TotalPages,
		"current_page": book.CurrentPage,
		"status":       book.Status,
		"notes":        notes,
	}
}

func noteToPayload(note db.Note) gin.H {
	return gin.H{
		"id":           note.ID,
		"book_id":      note.BookID,
		"content":      note.Content,
		"content_html": renderMarkdown(note.Content),
		"created_at":   note.CreatedAt.Format(time.RFC3339),
	}
}

func knowledgeToPayload(entry db.KnowledgeBase) gin.H {
	item := gin.H{
		"id":       entry.ID,
		"title":    entry.Title,
		"type":     entry.Type,
		"status":   entry.Status,
		"progress": entry.Progress,
	}

	if entry.CoverURL != nil {
		item["cover_url"] = *entry.CoverURL
	}
	if entry.Notes != nil {
		item["notes"] = *entry.Notes
		item["notes_html"] = renderMarkdown(*entry.Notes)
	}

	return item
}

// renderMarkdown 将笔记渲染为净化后的 HTML，渲染失败时返回空串
func renderMarkdown(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return ""
	}
	return sanitizer.Sanitize(buf.String())
}

func handleVaultError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		respondError(c, http.StatusNotFound, "书籍不存在")
	case errors.Is(err, service.ErrBookTitleRequired):
		respondError(c, http.StatusBadRequest, "书名不能为空")
	case errors.Is(err, service.ErrNoteContentRequired):
		respondError(c, http.StatusBadRequest, "笔记内容不能为空")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
