package api

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/csvcodec"
	"github.com/vonggiunfa/pfjc-bi/internal/excel"
)

const downloadTTL = 10 * time.Minute

// ExportCSV 导出 CSV（选中行优先，否则全部）
// POST /api/export/csv
func (h *Handler) ExportCSV(c *gin.Context) {
	rows := h.mgr.ExportRows()
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有可导出的数据"})
		return
	}

	text, err := csvcodec.Export(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败"})
		return
	}

	fileName := csvcodec.FileName(time.Now())
	token := h.downloads.put(fileName, "text/csv; charset=utf-8", []byte(text), downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"fileName": fileName,
		"rowCount": len(rows),
	})
}

// ExportExcel 导出 xlsx
// POST /api/export/excel
func (h *Handler) ExportExcel(c *gin.Context) {
	rows := h.mgr.ExportRows()
	if len(rows) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "没有可导出的数据"})
		return
	}

	wb, err := excel.BuildWorkbook(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败"})
		return
	}
	defer wb.Close()

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "导出失败"})
		return
	}

	fileName := excel.FileName(time.Now())
	token := h.downloads.put(fileName,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes(), downloadTTL)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"fileName": fileName,
		"rowCount": len(rows),
	})
}

// ImportCSV 上传 CSV 并整体替换行集合
// POST /api/import/csv
func (h *Handler) ImportCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	// 覆盖非空集合需要确认
	confirm := c.DefaultPostForm("confirm", "false") == "true"
	if h.mgr.NeedsConfirm() && !confirm {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "这将替换当前所有数据，确定要继续吗？",
			"needsConfirm": true,
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}

	rows, err := csvcodec.Import(string(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	replaced, err := h.mgr.ReplaceAll(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存导入数据失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rows":     replaced,
		"imported": len(replaced),
	})
}

// Download 按 token 下载导出产物，一次有效
// GET /api/export/download/:token
func (h *Handler) Download(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载已过期"})
		return
	}
	h.downloads.delete(token)

	// 中文文件名按 RFC 5987 编码
	c.Header("Content-Disposition",
		"attachment; filename*=UTF-8''"+url.PathEscape(item.fileName))
	c.Data(http.StatusOK, item.contentType, item.data)
}
