package report

import (
	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/money"
)

// Recalculate 重算一行的派生字段
// 纯函数且幂等：只读可编辑字段，只写派生字段
func Recalculate(r model.ReportRow) model.ReportRow {
	// 总营业额 = 微信 + 支付宝 + 现金 + 美团 + 抖音 + 外卖
	total := money.Sum(r.IncomeValues())

	// 采购总额 = 蔬菜 + 冻品 + 干货
	purchaseTotal := money.Sum(r.PurchaseValues())

	// 人均 = 总营业额 / 人数，任一操作数缺失则为空
	average := ""
	if r.People != "" && total != "" {
		average = money.Divide(total, r.People)
	}

	// 实收营业额 = 总营业额 - 采购总额，任一操作数缺失则为空
	factTotal := ""
	if total != "" && purchaseTotal != "" {
		factTotal = money.Subtract(total, purchaseTotal)
	}

	r.Total = total
	r.PurchaseTotal = purchaseTotal
	r.Average = average
	r.FactTotal = factTotal
	return r
}

// RecalculateAll 对整个集合重算一遍
func RecalculateAll(rows []model.ReportRow) []model.ReportRow {
	out := make([]model.ReportRow, len(rows))
	for i, r := range rows {
		out[i] = Recalculate(r)
	}
	return out
}
