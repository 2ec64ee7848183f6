package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/api"
	"github.com/vonggiunfa/pfjc-bi/internal/config"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
	"github.com/vonggiunfa/pfjc-bi/internal/storage"
)

//go:embed static
var staticFiles embed.FS

// Server HTTP 服务器
type Server struct {
	router *gin.Engine
	store  *storage.Store
	mgr    *report.Manager
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化 SQLite 键值存储
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "pfjc.db")

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	mgr := report.NewManager(store, report.Policy{
		KeepLastRow:      cfg.Report.KeepLastRow,
		RequireSelection: cfg.Report.RequireSelection,
	})

	s := &Server{
		router: gin.Default(),
		store:  store,
		mgr:    mgr,
		api:    api.NewHandler(mgr, cfg.Report),
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	} else {
		// 生产模式：使用 embed 的静态资源
		sub, _ := fs.Sub(staticFiles, "static")

		s.router.GET("/", func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})

		// SPA 路由 fallback
		s.router.NoRoute(func(c *gin.Context) {
			data, _ := fs.ReadFile(sub, "index.html")
			c.Data(http.StatusOK, "text/html; charset=utf-8", data)
		})
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// SaveNow 立即把当前行集合写入存储
func (s *Server) SaveNow() error {
	return s.mgr.Save()
}

// Close 释放底层资源
func (s *Server) Close() error {
	return s.store.Close()
}
