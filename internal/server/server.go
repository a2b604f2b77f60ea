package server

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jamesbas/supplemental-pay-agent/internal/agent"
	"github.com/jamesbas/supplemental-pay-agent/internal/api"
	"github.com/jamesbas/supplemental-pay-agent/internal/config"
	"github.com/jamesbas/supplemental-pay-agent/internal/extract"
	"github.com/jamesbas/supplemental-pay-agent/internal/inference"
	"github.com/jamesbas/supplemental-pay-agent/internal/store"
	"github.com/jamesbas/supplemental-pay-agent/internal/tabular"
)

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 组装全部组件并创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	sqliteStore, err := store.New(filepath.Join(dataDir, "suppay.db"))
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	connector, err := extract.NewConnector(dataDir)
	if err != nil {
		return nil, fmt.Errorf("initialize file connector: %w", err)
	}

	timeout := time.Duration(cfg.Inference.TimeoutSeconds) * time.Second
	gen := inference.NewClient(
		cfg.Inference.Endpoint,
		cfg.Inference.Deployment,
		cfg.Inference.APIKey(),
		timeout,
	)

	deps := &agent.Deps{
		Gen:               gen,
		Loader:            tabular.NewLoader(tabular.NewCache()),
		Files:             connector,
		OutlierMultiplier: cfg.Analysis.OutlierMultiplier,
	}
	router := agent.NewRouter(deps)

	apiHandler := api.NewHandler(router, deps, sqliteStore, connector, timeout)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
