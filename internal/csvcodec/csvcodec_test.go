package csvcodec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/report"
)

func sampleRow() model.ReportRow {
	row := model.NewRow()
	row.Date = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)
	row.Wechat = "3000.50"
	row.Alipay = "2000"
	row.Cash = "800"
	row.Meituan = "1200"
	row.Douyin = "300"
	row.Takeout = "1500"
	row.People = "55"
	row.Vegetable = "1000"
	row.Frozen = "600"
	row.Dry = "400"
	return report.Recalculate(row)
}

func TestExport_HeaderAndFormat(t *testing.T) {
	t.Parallel()

	out, err := Export([]model.ReportRow{sampleRow()})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 data line, got %d", len(lines))
	}
	if lines[0] != "日期,微信,支付宝,现金,美团,抖音,外卖,总营业额,人数,人均,蔬菜,冻品,干货,采购总额,实收营业额" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2024-03-15,3000.50,") {
		t.Fatalf("data line = %q", lines[1])
	}
	// 金额不带货币符号
	if strings.Contains(out, "¥") {
		t.Fatalf("export must not contain currency symbols")
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	orig := sampleRow()
	out, err := Export([]model.ReportRow{orig})
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	rows, err := Import(out)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	got := rows[0]
	// 可编辑字段逐一还原
	for _, key := range model.EditableKeys() {
		if key == "date" {
			continue
		}
		want, _ := orig.Get(key)
		have, _ := got.Get(key)
		if want != have {
			t.Fatalf("field %s: want %q got %q", key, want, have)
		}
	}
	if got.Date.Format("2006-01-02") != "2024-03-15" {
		t.Fatalf("date = %v", got.Date)
	}
	// 派生字段重算后与一致的原值相同
	if got.Total != orig.Total || got.PurchaseTotal != orig.PurchaseTotal ||
		got.Average != orig.Average || got.FactTotal != orig.FactTotal {
		t.Fatalf("derived fields diverged:\norig: %+v\ngot:  %+v", orig, got)
	}
}

func TestImport_TooFewLines(t *testing.T) {
	t.Parallel()

	if _, err := Import(""); !errors.Is(err, ErrTooFewLines) {
		t.Fatalf("empty: %v", err)
	}
	if _, err := Import("日期,微信\n\n\n"); !errors.Is(err, ErrTooFewLines) {
		t.Fatalf("header only: %v", err)
	}
}

func TestImport_HeaderMismatch(t *testing.T) {
	t.Parallel()

	out, _ := Export([]model.ReportRow{sampleRow()})
	// 去掉一个必需列标题
	broken := strings.Replace(out, "抖音", "某音", 1)

	if _, err := Import(broken); !errors.Is(err, ErrHeaderMismatch) {
		t.Fatalf("expected ErrHeaderMismatch, got %v", err)
	}
}

func TestImport_SkipsWrongArityLines(t *testing.T) {
	t.Parallel()

	out, _ := Export([]model.ReportRow{sampleRow()})
	// 追加一行字段数不足的数据，应被静默跳过
	withJunk := strings.TrimSpace(out) + "\n2024-03-16,100,200\n"

	rows, err := Import(withJunk)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected junk line skipped, got %d rows", len(rows))
	}
}

func TestImport_NoValidRows(t *testing.T) {
	t.Parallel()

	out, _ := Export([]model.ReportRow{sampleRow()})
	header := strings.SplitN(out, "\n", 2)[0]
	text := header + "\n1,2,3\n"

	if _, err := Import(text); !errors.Is(err, ErrNoValidRows) {
		t.Fatalf("expected ErrNoValidRows, got %v", err)
	}
}

func TestImport_DateFallbacks(t *testing.T) {
	t.Parallel()

	out, _ := Export([]model.ReportRow{sampleRow()})
	for _, c := range []struct {
		in   string
		want string
	}{
		{"2024-03-15", "2024-03-15"},
		{"03/15/2024", "2024-03-15"},
		{"2024/03/15", "2024-03-15"},
	} {
		text := strings.Replace(out, "2024-03-15", c.in, 1)
		rows, err := Import(text)
		if err != nil {
			t.Fatalf("import %q: %v", c.in, err)
		}
		if got := rows[0].Date.Format("2006-01-02"); got != c.want {
			t.Fatalf("date %q parsed to %q", c.in, got)
		}
	}

	// 无法解析的日期退回当前时间
	text := strings.Replace(out, "2024-03-15", "三月十五", 1)
	rows, err := Import(text)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rows[0].Date.Before(time.Now().Add(-time.Minute)) {
		t.Fatalf("unparsable date should fall back to now")
	}
}

func TestImport_QuotedCommaSurvives(t *testing.T) {
	t.Parallel()

	row := sampleRow()
	row.People = "55" // 正常字段
	out, err := Export([]model.ReportRow{row})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	// 标准 CSV 引号转义：含逗号的值包引号后应能往返
	out = strings.Replace(out, "3000.50", `"3,000.50"`, 1)
	rows, err := Import(out)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rows[0].Wechat != "3,000.50" {
		t.Fatalf("quoted field = %q", rows[0].Wechat)
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	if got := FileName(now); got != "销售数据_2024-05-01.csv" {
		t.Fatalf("FileName = %q", got)
	}
}
