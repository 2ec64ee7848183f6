package excel

import (
	"testing"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

func TestBuildWorkbook(t *testing.T) {
	t.Parallel()

	row := model.NewRow()
	row.Date = time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	row.Wechat = "3000.50"
	row.People = "55"
	row.Vegetable = "1000"
	row = report.Recalculate(row)

	f, err := BuildWorkbook([]model.ReportRow{row})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })

	got, err := f.GetCellValue(sheetName, "A1")
	if err != nil || got != "日期" {
		t.Fatalf("A1 = %q err=%v", got, err)
	}
	got, _ = f.GetCellValue(sheetName, "B1")
	if got != "微信" {
		t.Fatalf("B1 = %q", got)
	}

	got, _ = f.GetCellValue(sheetName, "A2")
	if got != "2024-03-15" {
		t.Fatalf("A2 = %q", got)
	}
	got, _ = f.GetCellValue(sheetName, "B2")
	if got != "3000.5" {
		t.Fatalf("B2 = %q", got)
	}
	// 人数列
	got, _ = f.GetCellValue(sheetName, "I2")
	if got != "55" {
		t.Fatalf("I2 = %q", got)
	}
	// 空金额列保持空白
	got, _ = f.GetCellValue(sheetName, "C2")
	if got != "" {
		t.Fatalf("C2 = %q, want empty", got)
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	if got := FileName(now); got != "销售数据_2024-05-01.xlsx" {
		t.Fatalf("FileName = %q", got)
	}
}
