package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vonggiunfa/pfjc-bi/internal/pdfconv"
)

// ConvertImages 上传图片批量转 PDF，每张图一个下载 token
// POST /api/pdf/convert
func (h *Handler) ConvertImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请先选择图片"})
		return
	}

	inputs := make([]pdfconv.InputImage, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
			return
		}
		inputs = append(inputs, pdfconv.InputImage{Name: fh.Filename, Data: data})
	}

	results, err := h.converter.Convert(inputs)
	if err != nil {
		switch {
		case errors.Is(err, pdfconv.ErrBusy):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": pdfconv.ErrBusy.Error()})
		case errors.Is(err, pdfconv.ErrNoImages):
			c.JSON(http.StatusBadRequest, gin.H{"error": pdfconv.ErrNoImages.Error()})
		default:
			// 整批只报一个笼统错误，细节进日志
			log.Printf("图片转 PDF 失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": pdfconv.ErrConvertFailed.Error()})
		}
		return
	}

	type converted struct {
		Token    string `json:"token"`
		FileName string `json:"fileName"`
	}
	out := make([]converted, 0, len(results))
	for _, r := range results {
		token := h.downloads.put(r.Name, "application/pdf", r.PDF, downloadTTL)
		out = append(out, converted{Token: token, FileName: r.Name})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}
