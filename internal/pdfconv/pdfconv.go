// Package pdfconv 把上传的图片逐张转换为单页 PDF
// 文档构造交给 fpdf：建文档、嵌图、加页、序列化，全部当黑盒用
package pdfconv

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-pdf/fpdf"
)

var (
	// ErrBusy 上一批转换还没结束
	ErrBusy = errors.New("转换正在进行中，请稍候")
	// ErrNoImages 过滤后没有可转换的图片
	ErrNoImages = errors.New("请选择 JPG 或 PNG 格式的图片")
	// ErrConvertFailed 批量转换失败，整批报一个错
	ErrConvertFailed = errors.New("转换失败，请重试")
)

// InputImage 一张待转换的图片
type InputImage struct {
	Name string
	Data []byte
}

// Result 一张图片的转换产物
type Result struct {
	Name string // 源文件名换成 .pdf 后缀
	PDF  []byte
}

// Converter 转换器，busy 标记挡住重入提交
type Converter struct {
	busy atomic.Bool
}

// NewConverter 创建转换器
func NewConverter() *Converter {
	return &Converter{}
}

// Busy 是否有批次在转换
func (c *Converter) Busy() bool {
	return c.busy.Load()
}

// FilterImages 按内容嗅探只留 JPEG/PNG
func FilterImages(files []InputImage) []InputImage {
	kept := make([]InputImage, 0, len(files))
	for _, f := range files {
		switch sniffType(f.Data) {
		case "image/jpeg", "image/png":
			kept = append(kept, f)
		}
	}
	return kept
}

// Convert 逐张顺序转换，一批只报一个总错
// 批次开始后不支持取消
func (c *Converter) Convert(files []InputImage) ([]Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer c.busy.Store(false)

	accepted := FilterImages(files)
	if len(accepted) == 0 {
		return nil, ErrNoImages
	}

	results := make([]Result, 0, len(accepted))
	for _, f := range accepted {
		pdf, err := convertOne(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrConvertFailed, f.Name, err)
		}
		results = append(results, Result{Name: PDFFileName(f.Name), PDF: pdf})
	}
	return results, nil
}

// convertOne 单张图片：建文档、按原始像素尺寸开一页、整页铺图、序列化
func convertOne(f InputImage) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return nil, fmt.Errorf("读取图片尺寸失败: %w", err)
	}
	w := float64(cfg.Width)
	h := float64(cfg.Height)

	imageType := "PNG"
	if sniffType(f.Data) == "image/jpeg" {
		imageType = "JPG"
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: w, Ht: h},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opts := fpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(f.Name, opts, bytes.NewReader(f.Data))
	doc.ImageOptions(f.Name, 0, 0, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDFFileName 源文件名替换扩展名为 .pdf
func PDFFileName(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".jpeg", ".jpg", ".png"} {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)] + ".pdf"
		}
	}
	return name + ".pdf"
}

func sniffType(data []byte) string {
	return http.DetectContentType(data)
}
