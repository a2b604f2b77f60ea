package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// 上传大小上限
const maxUploadBytes = 16 << 20

// Upload 上传数据工作簿到数据目录
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file in request"})
		return
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 16MB)"})
		return
	}

	name := filepath.Base(file.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".xlsx" && ext != ".xls" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type %q", ext)})
		return
	}

	dest := filepath.Join(h.files.DataDir(), name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	// 存前验证可读性，坏文件不留在数据目录
	if wb, err := excelize.OpenFile(dest); err != nil {
		os.Remove(dest)
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is not a readable workbook"})
		return
	} else {
		wb.Close()
	}

	c.JSON(http.StatusOK, gin.H{
		"name": name,
		"size": file.Size,
	})
}

// FileInfo 数据文件信息
type FileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ListFiles 列出数据目录下的工作簿
// GET /api/files
func (h *Handler) ListFiles(c *gin.Context) {
	paths, err := h.files.ListWorkbooks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	infos := make([]FileInfo, 0, len(paths))
	for _, p := range paths {
		info := FileInfo{Name: filepath.Base(p), Path: p}
		if stat, err := os.Stat(p); err == nil {
			info.Size = stat.Size()
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, gin.H{"files": infos})
}
