// Package charts 把行集合归约成图表需要的聚合数据
// 只产出数据，渲染交给前端图表库
package charts

import (
	"sort"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
	"github.com/vonggiunfa/pfjc-bi/internal/money"
)

// Point 饼图数据点
type Point struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// TrendPoint 营业额趋势点
type TrendPoint struct {
	Name          string  `json:"name"` // MM-dd
	Total         float64 `json:"total"`
	FactTotal     float64 `json:"factTotal"`
	PurchaseTotal float64 `json:"purchaseTotal"`
}

// DailyPoint 按渠道拆分的单日收入
type DailyPoint struct {
	Name    string  `json:"name"`
	Wechat  float64 `json:"wechat"`
	Alipay  float64 `json:"alipay"`
	Cash    float64 `json:"cash"`
	Meituan float64 `json:"meituan"`
	Douyin  float64 `json:"douyin"`
	Takeout float64 `json:"takeout"`
}

// Summary 汇总指标
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`   // 总营业额
	TotalProfit   float64 `json:"totalProfit"`   // 实收营业额
	TotalPurchase float64 `json:"totalPurchase"` // 采购总额
	AverageDaily  float64 `json:"averageDaily"`  // 日均营业额
	ProfitRate    float64 `json:"profitRate"`    // 毛利率（%），总营业额为 0 时为 0
}

// Report 一次聚合的全部产出
type Report struct {
	ValidRows int          `json:"validRows"`
	Payment   []Point      `json:"payment"`
	Purchase  []Point      `json:"purchase"`
	Trend     []TrendPoint `json:"trend"`
	Daily     []DailyPoint `json:"daily"`
	Summary   Summary      `json:"summary"`
}

// 趋势图和日收入图的默认窗口，避免图表过于拥挤
const (
	DefaultTrendLimit = 15
	DefaultDailyLimit = 7
)

func amount(s string) float64 {
	return float64(money.Parse(s)) / 100
}

// Build 聚合行集合
// 先按日期排序、过滤掉没有总营业额的行，再生成各类图表数据
func Build(rows []model.ReportRow, trendLimit, dailyLimit int) Report {
	if trendLimit <= 0 {
		trendLimit = DefaultTrendLimit
	}
	if dailyLimit <= 0 {
		dailyLimit = DefaultDailyLimit
	}

	sorted := make([]model.ReportRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	valid := sorted[:0:0]
	for _, r := range sorted {
		if r.Total != "" && money.Parse(r.Total) != 0 {
			valid = append(valid, r)
		}
	}

	rep := Report{ValidRows: len(valid)}
	if len(valid) == 0 {
		return rep
	}

	rep.Payment = paymentPoints(valid)
	rep.Purchase = purchasePoints(valid)
	rep.Trend = trendPoints(tail(valid, trendLimit))
	rep.Daily = dailyPoints(tail(valid, dailyLimit))
	rep.Summary = summarize(valid)
	return rep
}

func tail(rows []model.ReportRow, n int) []model.ReportRow {
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// paymentPoints 各支付渠道合计，为 0 的渠道不出现在饼图里
func paymentPoints(rows []model.ReportRow) []Point {
	names := []struct{ key, name string }{
		{"wechat", "微信"},
		{"alipay", "支付宝"},
		{"cash", "现金"},
		{"meituan", "美团"},
		{"douyin", "抖音"},
		{"takeout", "外卖"},
	}
	points := make([]Point, 0, len(names))
	for _, n := range names {
		var sum float64
		for _, r := range rows {
			v, _ := r.Get(n.key)
			sum += amount(v)
		}
		if sum > 0 {
			points = append(points, Point{Name: n.name, Value: sum})
		}
	}
	return points
}

func purchasePoints(rows []model.ReportRow) []Point {
	names := []struct{ key, name string }{
		{"vegetable", "蔬菜"},
		{"frozen", "冻品"},
		{"dry", "干货"},
	}
	points := make([]Point, 0, len(names))
	for _, n := range names {
		var sum float64
		for _, r := range rows {
			v, _ := r.Get(n.key)
			sum += amount(v)
		}
		if sum > 0 {
			points = append(points, Point{Name: n.name, Value: sum})
		}
	}
	return points
}

func trendPoints(rows []model.ReportRow) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, TrendPoint{
			Name:          r.Date.Format("01-02"),
			Total:         amount(r.Total),
			FactTotal:     amount(r.FactTotal),
			PurchaseTotal: amount(r.PurchaseTotal),
		})
	}
	return points
}

func dailyPoints(rows []model.ReportRow) []DailyPoint {
	points := make([]DailyPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, DailyPoint{
			Name:    r.Date.Format("01-02"),
			Wechat:  amount(r.Wechat),
			Alipay:  amount(r.Alipay),
			Cash:    amount(r.Cash),
			Meituan: amount(r.Meituan),
			Douyin:  amount(r.Douyin),
			Takeout: amount(r.Takeout),
		})
	}
	return points
}

func summarize(rows []model.ReportRow) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalIncome += amount(r.Total)
		s.TotalProfit += amount(r.FactTotal)
		s.TotalPurchase += amount(r.PurchaseTotal)
	}
	s.AverageDaily = s.TotalIncome / float64(len(rows))
	if s.TotalIncome > 0 {
		s.ProfitRate = s.TotalProfit / s.TotalIncome * 100
	}
	return s
}
