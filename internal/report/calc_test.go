package report

import (
	"testing"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
)

func TestRecalculate_Derivation(t *testing.T) {
	t.Parallel()

	row := model.NewRow()
	row.Wechat = "100"
	row.Alipay = "200"
	row.Cash = "50.5"
	row.People = "7"
	row.Vegetable = "30"
	row.Frozen = "20"
	row.Dry = "10"

	got := Recalculate(row)
	if got.Total != "350.5" {
		t.Fatalf("total = %q", got.Total)
	}
	if got.PurchaseTotal != "60" {
		t.Fatalf("purchaseTotal = %q", got.PurchaseTotal)
	}
	if got.Average != "50.07" {
		t.Fatalf("average = %q", got.Average)
	}
	if got.FactTotal != "290.5" {
		t.Fatalf("factTotal = %q", got.FactTotal)
	}
	// 可编辑字段原样保留
	if got.Wechat != "100" || got.People != "7" || got.ID != row.ID {
		t.Fatalf("editable fields changed: %+v", got)
	}
}

func TestRecalculate_Idempotent(t *testing.T) {
	t.Parallel()

	row := model.NewRow()
	row.Wechat = "123.45"
	row.Takeout = "10"
	row.People = "3"
	row.Vegetable = "40"

	once := Recalculate(row)
	twice := Recalculate(once)
	if once != twice {
		t.Fatalf("recalculate not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestRecalculate_MissingOperandsYieldEmpty(t *testing.T) {
	t.Parallel()

	row := model.NewRow()
	row.Wechat = "100"
	// 人数为空 → 人均为空
	got := Recalculate(row)
	if got.Average != "" {
		t.Fatalf("average = %q, want empty", got.Average)
	}
	// 采购为空 → 实收为空
	if got.FactTotal != "" {
		t.Fatalf("factTotal = %q, want empty", got.FactTotal)
	}

	// 全空行：所有派生字段为空
	empty := Recalculate(model.NewRow())
	if empty.Total != "" || empty.PurchaseTotal != "" || empty.Average != "" || empty.FactTotal != "" {
		t.Fatalf("empty row derived fields not empty: %+v", empty)
	}
}

func TestRecalculate_NegativeFactTotal(t *testing.T) {
	t.Parallel()

	row := model.NewRow()
	row.Cash = "100"
	row.Vegetable = "150"

	got := Recalculate(row)
	if got.FactTotal != "-50" {
		t.Fatalf("factTotal = %q", got.FactTotal)
	}
}

func TestMockRows(t *testing.T) {
	t.Parallel()

	rows := MockRows(30)
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r.ID == "" || r.Wechat == "" || r.People == "" {
			t.Fatalf("row %d incomplete: %+v", i, r)
		}
		// 派生字段留空，由计算器填
		if r.Total != "" {
			t.Fatalf("row %d total should be empty before recalculation", i)
		}
	}
	// 日期递增
	for i := 1; i < len(rows); i++ {
		if !rows[i].Date.After(rows[i-1].Date) {
			t.Fatalf("dates not increasing at %d", i)
		}
	}
}
