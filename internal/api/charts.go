package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/charts"
)

// GetCharts 图表聚合数据
// GET /api/charts?scope=all|selected
func (h *Handler) GetCharts(c *gin.Context) {
	scope := c.DefaultQuery("scope", "all")
	rows := h.mgr.ScopeRows(scope == "selected")

	rep := charts.Build(rows, h.reportCfg.TrendLimit, h.reportCfg.DailyLimit)
	c.JSON(http.StatusOK, rep)
}
