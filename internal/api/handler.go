// Package api 浏览器前端驱动的 JSON 接口
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/config"
	"github.com/vonggiunfa/pfjc-bi/internal/pdfconv"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

// Handler API 处理器
type Handler struct {
	mgr       *report.Manager
	reportCfg config.ReportConfig
	downloads *downloadStore
	converter *pdfconv.Converter
}

// NewHandler 创建 API 处理器
func NewHandler(mgr *report.Manager, reportCfg config.ReportConfig) *Handler {
	return &Handler{
		mgr:       mgr,
		reportCfg: reportCfg.Normalized(),
		downloads: newDownloadStore(),
		converter: pdfconv.NewConverter(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)
	router.GET("/columns", h.GetColumns)

	// 报表行操作
	router.GET("/rows", h.ListRows)
	router.POST("/rows", h.AddRow)
	router.PATCH("/rows/:id", h.UpdateRow)
	router.POST("/rows/:id/commit", h.CommitRow)
	router.POST("/rows/:id/select", h.SelectRow)
	router.POST("/rows/select-all", h.SelectAll)
	router.POST("/rows/delete", h.DeleteSelected)
	router.POST("/save", h.Save)
	router.POST("/mock", h.GenerateMock)

	// 导入导出
	router.POST("/import/csv", h.ImportCSV)
	router.POST("/export/csv", h.ExportCSV)
	router.POST("/export/excel", h.ExportExcel)
	router.GET("/export/download/:token", h.Download)

	// 图表数据
	router.GET("/charts", h.GetCharts)

	// 图片转 PDF
	router.POST("/pdf/convert", h.ConvertImages)
	router.GET("/pdf/download/:token", h.Download)

	// 行为策略
	router.GET("/policy", h.GetPolicy)
	router.PATCH("/policy", h.UpdatePolicy)
}
