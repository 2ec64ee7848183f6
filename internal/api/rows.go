package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	RowCount      int  `json:"rowCount"`      // 行数
	SelectedCount int  `json:"selectedCount"` // 选中行数
	SelectAll     bool `json:"selectAll"`     // 是否全选
	Converting    bool `json:"converting"`    // 是否有图片批次在转换
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	rows, selected, all := h.mgr.Status()
	c.JSON(http.StatusOK, StatusResponse{
		RowCount:      rows,
		SelectedCount: selected,
		SelectAll:     all,
		Converting:    h.converter.Busy(),
	})
}

// GetColumns 表格列配置
// GET /api/columns
func (h *Handler) GetColumns(c *gin.Context) {
	c.JSON(http.StatusOK, model.Columns)
}

// ListRows 行集合
// GET /api/rows
func (h *Handler) ListRows(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rows":     h.mgr.Rows(),
		"selected": h.mgr.SelectedIDs(),
	})
}

// AddRow 新增一条空白行
// POST /api/rows
func (h *Handler) AddRow(c *gin.Context) {
	row := h.mgr.AddRow()
	c.JSON(http.StatusOK, row)
}

// UpdateRowRequest 行更新请求：改字段或改日期
type UpdateRowRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Date  string `json:"date"` // yyyy-MM-dd，和 key/value 互斥
}

// UpdateRow 更新一行的可编辑字段或日期
// PATCH /api/rows/:id
func (h *Handler) UpdateRow(c *gin.Context) {
	id := c.Param("id")

	var req UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	var err error
	if req.Date != "" {
		var date time.Time
		date, err = time.ParseInLocation("2006-01-02", req.Date, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "日期格式错误"})
			return
		}
		err = h.mgr.SetDate(id, date)
	} else {
		err = h.mgr.EditField(id, req.Key, req.Value)
	}

	if err != nil {
		c.JSON(rowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// CommitRow 失焦提交：重算一行派生字段
// POST /api/rows/:id/commit
func (h *Handler) CommitRow(c *gin.Context) {
	row, err := h.mgr.Commit(c.Param("id"))
	if err != nil {
		c.JSON(rowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, row)
}

// SelectRowRequest 选择请求
type SelectRowRequest struct {
	Selected bool `json:"selected"`
}

// SelectRow 选中/取消选中一行
// POST /api/rows/:id/select
func (h *Handler) SelectRow(c *gin.Context) {
	var req SelectRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	if err := h.mgr.Select(c.Param("id"), req.Selected); err != nil {
		c.JSON(rowErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// SelectAll 全选/全不选
// POST /api/rows/select-all
func (h *Handler) SelectAll(c *gin.Context) {
	var req SelectRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}
	h.mgr.SelectAll(req.Selected)
	c.Status(http.StatusNoContent)
}

// DeleteSelected 删除选中行
// POST /api/rows/delete
func (h *Handler) DeleteSelected(c *gin.Context) {
	n, err := h.mgr.DeleteSelected()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// Save 保存当前集合
// POST /api/save
func (h *Handler) Save(c *gin.Context) {
	if err := h.mgr.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "数据已保存"})
}

// MockRequest 模拟数据请求
type MockRequest struct {
	Days    int  `json:"days"`
	Confirm bool `json:"confirm"` // 覆盖现有数据前的确认
}

// GenerateMock 生成模拟数据并整体替换
// POST /api/mock
func (h *Handler) GenerateMock(c *gin.Context) {
	var req MockRequest
	_ = c.ShouldBindJSON(&req)

	if h.mgr.NeedsConfirm() && !req.Confirm {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "这将替换当前所有数据，确定要继续吗？",
			"needsConfirm": true,
		})
		return
	}

	days := req.Days
	if days <= 0 {
		days = h.reportCfg.MockDays
	}
	rows, err := h.mgr.ReplaceAll(report.MockRows(days))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存模拟数据失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func rowErrorStatus(err error) int {
	if errors.Is(err, report.ErrRowNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
