package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamesbas/supplemental-pay-agent/internal/agent"
	"github.com/jamesbas/supplemental-pay-agent/internal/extract"
	"github.com/jamesbas/supplemental-pay-agent/internal/store"
)

// Handler API 处理器
type Handler struct {
	router  *agent.Router
	deps    *agent.Deps
	store   *store.Store
	files   *extract.Connector
	timeout time.Duration
}

// NewHandler 创建 API 处理器
func NewHandler(router *agent.Router, deps *agent.Deps, st *store.Store, files *extract.Connector, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Handler{
		router:  router,
		deps:    deps,
		store:   st,
		files:   files,
		timeout: timeout,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 健康检查与系统状态
	router.GET("/health", h.Health)
	router.GET("/status", h.GetStatus)

	// 问答入口
	router.POST("/chat", h.Chat)

	// 数据文件
	router.POST("/upload", h.Upload)
	router.GET("/files", h.ListFiles)

	// 请求审计
	router.GET("/requests", h.ListRequests)
}
