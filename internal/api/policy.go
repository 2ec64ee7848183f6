package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

// PolicyResponse 表格行为策略
type PolicyResponse struct {
	KeepLastRow      bool `json:"keepLastRow"`
	RequireSelection bool `json:"requireSelection"`
}

// GetPolicy 获取当前策略
// GET /api/policy
func (h *Handler) GetPolicy(c *gin.Context) {
	p := h.mgr.Policy()
	c.JSON(http.StatusOK, PolicyResponse{
		KeepLastRow:      p.KeepLastRow,
		RequireSelection: p.RequireSelection,
	})
}

// UpdatePolicyRequest 策略更新请求，指针字段允许部分更新
type UpdatePolicyRequest struct {
	KeepLastRow      *bool `json:"keepLastRow"`
	RequireSelection *bool `json:"requireSelection"`
}

// UpdatePolicy 更新策略
// PATCH /api/policy
func (h *Handler) UpdatePolicy(c *gin.Context) {
	var req UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	p := h.mgr.Policy()
	if req.KeepLastRow != nil {
		p.KeepLastRow = *req.KeepLastRow
	}
	if req.RequireSelection != nil {
		p.RequireSelection = *req.RequireSelection
	}
	h.mgr.SetPolicy(report.Policy{
		KeepLastRow:      p.KeepLastRow,
		RequireSelection: p.RequireSelection,
	})

	c.JSON(http.StatusOK, PolicyResponse{
		KeepLastRow:      p.KeepLastRow,
		RequireSelection: p.RequireSelection,
	})
}
