// Package excel 把报表导出为 xlsx 工作簿
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/money"
)

const sheetName = "销售数据"

// BuildWorkbook 生成工作簿：表头一行，之后每条记录一行
// 金额列写成数值方便在 Excel 里继续算，日期按 yyyy-MM-dd
func BuildWorkbook(rows []model.ReportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}
	f.SetActiveSheet(idx)

	// 表头
	for col, c := range model.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, c.Title); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	// 数据行
	for i, row := range rows {
		for col, c := range model.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				_ = f.Close()
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(row, c)); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}

	// 日期列和派生列稍宽一点
	_ = f.SetColWidth(sheetName, "A", "A", 14)

	return f, nil
}

func cellValue(row model.ReportRow, c model.Column) any {
	if c.Key == "date" {
		return row.Date.Format("2006-01-02")
	}
	v, _ := row.Get(c.Key)
	if v == "" {
		return ""
	}
	if c.IsMoney || c.Key == "people" {
		return float64(money.Parse(v)) / 100
	}
	return v
}

// FileName 导出文件名：固定前缀 + 导出日期
func FileName(now time.Time) string {
	return fmt.Sprintf("销售数据_%s.xlsx", now.Format("2006-01-02"))
}
