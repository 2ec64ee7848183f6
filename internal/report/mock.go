package report

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
)

type amountRange struct {
	min, max float64
}

func (ar amountRange) random(factor float64) string {
	base := rand.Float64()*(ar.max-ar.min) + ar.min
	return fmt.Sprintf("%.2f", base*factor)
}

// MockRows 生成过去 days 天的模拟数据，派生字段留给计算器
// 周五六日营业额上浮，采购额与营业额弱相关
func MockRows(days int) []model.ReportRow {
	if days <= 0 {
		days = 30
	}

	incomeRanges := map[string]amountRange{
		"wechat":  {2000, 5000},
		"alipay":  {1500, 3500},
		"cash":    {500, 1500},
		"meituan": {800, 2000},
		"douyin":  {200, 1000},
		"takeout": {1000, 3000},
	}

	start := time.Now().AddDate(0, 0, -days)
	rows := make([]model.ReportRow, 0, days)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		factor := 1.0
		switch date.Weekday() {
		case time.Friday, time.Saturday, time.Sunday:
			factor = 1.3
		}
		// 每周再加一点随机波动
		factor *= 0.9 + rand.Float64()*0.3

		row := model.NewRow()
		row.Date = date
		var totalIncome float64
		for key, ar := range incomeRanges {
			v := ar.random(factor)
			row.Set(key, v)
			var f float64
			fmt.Sscanf(v, "%f", &f)
			totalIncome += f
		}

		// 采购占营业额 30%-40%，再随机分摊到三个类目
		totalPurchase := totalIncome * (0.3 + rand.Float64()*0.1)
		vegPct := 0.4 + rand.Float64()*0.2
		frozenPct := 0.2 + rand.Float64()*0.2
		dryPct := 1 - vegPct - frozenPct
		row.Vegetable = fmt.Sprintf("%.2f", totalPurchase*vegPct)
		row.Frozen = fmt.Sprintf("%.2f", totalPurchase*frozenPct)
		row.Dry = fmt.Sprintf("%.2f", totalPurchase*dryPct)

		// 人均消费 100-200 元估算人数
		avgConsumption := 100 + rand.Float64()*100
		people := int(math.Round(totalIncome / avgConsumption))
		if people < 10 {
			people = 10
		}
		row.People = fmt.Sprintf("%d", people)

		rows = append(rows, row)
	}

	return rows
}
