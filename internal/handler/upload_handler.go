package handler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

// UploadCover 处理封面图片上传请求
func (a *API) UploadCover(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	// 检查文件类型
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	// 预读图片尺寸，顺带校验文件内容确实是图片
	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "读取图片失败")
		return
	}
	cfg, _, err := image.DecodeConfig(src)
	src.Close()
	if err != nil {
		respondError(c, http.StatusBadRequest, "无法识别的图片格式")
		return
	}

	// 创建上传目录
	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		respondError(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	// 生成唯一文件名
	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	fileURL := fmt.Sprintf("%s/%s", strings.TrimRight(a.uploadURL, "/"), newFilename)
	c.JSON(http.StatusOK, gin.H{
		"url":    fileURL,
		"width":  cfg.Width,
		"height": cfg.Height,
	})
}
