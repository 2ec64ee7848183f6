// Package csvcodec 负责行集合与 CSV 文本的互转
// 原始版本直接用逗号拼接、不做转义；这里改用带引号的标准 CSV 读写，
// 字段里出现逗号也能完整往返
package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

var (
	// ErrTooFewLines 连表头加一行数据都不够
	ErrTooFewLines = errors.New("CSV 文件至少需要表头和一行数据")
	// ErrHeaderMismatch 表头缺少必需列
	ErrHeaderMismatch = errors.New("CSV 表头与导出格式不匹配")
	// ErrNoValidRows 没有一行数据通过解析
	ErrNoValidRows = errors.New("CSV 中没有有效的数据行")
)

// dateLayouts 导入日期的尝试顺序
var dateLayouts = []string{"2006-01-02", "01/02/2006", "2006/01/02"}

// Export 序列化行集合为 CSV 文本
// 表头为全部中文列标题（不含选择列），日期格式 yyyy-MM-dd，
// 金额按原始字符串输出，不带货币符号
func Export(rows []model.ReportRow) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := make([]string, 0, len(model.Columns))
	for _, c := range model.Columns {
		header = append(header, c.Title)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, row := range rows {
		record := make([]string, 0, len(model.Columns))
		for _, c := range model.Columns {
			if c.Key == "date" {
				record = append(record, row.Date.Format("2006-01-02"))
				continue
			}
			v, _ := row.Get(c.Key)
			record = append(record, v)
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}

	w.Flush()
	return sb.String(), w.Error()
}

// FileName 导出文件名：固定前缀 + 导出日期
func FileName(now time.Time) string {
	return fmt.Sprintf("销售数据_%s.csv", now.Format("2006-01-02"))
}

// Import 解析上传的 CSV 文本为行集合
// 表头必须覆盖全部导出列；字段数不匹配的数据行静默跳过；
// 返回前对每一行跑一遍计算器
func Import(text string) ([]model.ReportRow, error) {
	lines := splitNonBlankLines(text)
	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}

	header, err := parseLine(lines[0])
	if err != nil {
		return nil, ErrHeaderMismatch
	}

	// 列标题 → 表头位置
	position := make(map[string]int, len(header))
	for i, title := range header {
		position[strings.TrimSpace(title)] = i
	}
	for _, c := range model.Columns {
		if _, ok := position[c.Title]; !ok {
			return nil, fmt.Errorf("%w: 缺少列 %s", ErrHeaderMismatch, c.Title)
		}
	}

	rows := make([]model.ReportRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields, err := parseLine(line)
		if err != nil {
			continue
		}
		// 字段数和表头不一致的行直接跳过
		if len(fields) != len(header) {
			continue
		}

		row := model.NewRow()
		for title, i := range position {
			col, known := model.ColumnByTitle(title)
			if !known {
				continue
			}
			if col.Key == "date" {
				row.Date = parseImportDate(fields[i])
				continue
			}
			row.Set(col.Key, fields[i])
		}
		rows = append(rows, report.Recalculate(row))
	}

	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}
	return rows, nil
}

func splitNonBlankLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func parseLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.Read()
}

// parseImportDate 依次尝试 yyyy-MM-dd、MM/dd/yyyy、yyyy/MM/dd，全失败取当前时间
func parseImportDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}
