package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health 健康检查
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "API server is running",
	})
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized   bool   `json:"initialized"`   // 是否有可用数据
	WorkbookCount int    `json:"workbookCount"` // 数据目录工作簿数
	TeamSize      int    `json:"teamSize"`      // 员工表行数
	RequestCount  int    `json:"requestCount"`  // 已处理请求数
	DataDir       string `json:"dataDir"`       // 数据目录
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	paths, err := h.files.ListWorkbooks()
	if err != nil {
		paths = nil
	}

	teamSize := 0
	if len(paths) > 0 {
		tables := h.deps.Tables()
		teamSize = tables.Employees.NumRows()
	}

	requestCount, err := h.store.CountRequests()
	if err != nil {
		requestCount = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:   len(paths) > 0,
		WorkbookCount: len(paths),
		TeamSize:      teamSize,
		RequestCount:  requestCount,
		DataDir:       h.files.DataDir(),
	})
}
