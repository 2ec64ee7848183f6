package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportRow 一天的销售记录
// 金额字段一律用字符串存储，空串表示"未填写"；派生字段由计算器维护
type ReportRow struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`

	// 收入渠道
	Wechat  string `json:"wechat"`  // 微信
	Alipay  string `json:"alipay"`  // 支付宝
	Cash    string `json:"cash"`    // 现金
	Meituan string `json:"meituan"` // 美团
	Douyin  string `json:"douyin"`  // 抖音
	Takeout string `json:"takeout"` // 外卖

	Total   string `json:"total"`   // 总营业额（派生）
	People  string `json:"people"`  // 人数
	Average string `json:"average"` // 人均（派生）

	// 采购类目
	Vegetable string `json:"vegetable"` // 蔬菜
	Frozen    string `json:"frozen"`    // 冻品
	Dry       string `json:"dry"`       // 干货

	PurchaseTotal string `json:"purchaseTotal"` // 采购总额（派生）
	FactTotal     string `json:"factTotal"`     // 实收营业额（派生）
}

// NewRow 创建一条空白记录，日期取当前时间
func NewRow() ReportRow {
	return ReportRow{
		ID:   uuid.NewString(),
		Date: time.Now(),
	}
}

// IncomeValues 六个收入渠道的值，求和顺序固定
func (r ReportRow) IncomeValues() []string {
	return []string{r.Wechat, r.Alipay, r.Cash, r.Meituan, r.Douyin, r.Takeout}
}

// PurchaseValues 三个采购类目的值
func (r ReportRow) PurchaseValues() []string {
	return []string{r.Vegetable, r.Frozen, r.Dry}
}

// Get 按列键读取字段值；日期列不走这里
func (r ReportRow) Get(key string) (string, bool) {
	switch key {
	case "wechat":
		return r.Wechat, true
	case "alipay":
		return r.Alipay, true
	case "cash":
		return r.Cash, true
	case "meituan":
		return r.Meituan, true
	case "douyin":
		return r.Douyin, true
	case "takeout":
		return r.Takeout, true
	case "total":
		return r.Total, true
	case "people":
		return r.People, true
	case "average":
		return r.Average, true
	case "vegetable":
		return r.Vegetable, true
	case "frozen":
		return r.Frozen, true
	case "dry":
		return r.Dry, true
	case "purchaseTotal":
		return r.PurchaseTotal, true
	case "factTotal":
		return r.FactTotal, true
	}
	return "", false
}

// Set 按列键写入字段值，返回是否命中已知列
func (r *ReportRow) Set(key, value string) bool {
	switch key {
	case "wechat":
		r.Wechat = value
	case "alipay":
		r.Alipay = value
	case "cash":
		r.Cash = value
	case "meituan":
		r.Meituan = value
	case "douyin":
		r.Douyin = value
	case "takeout":
		r.Takeout = value
	case "total":
		r.Total = value
	case "people":
		r.People = value
	case "average":
		r.Average = value
	case "vegetable":
		r.Vegetable = value
	case "frozen":
		r.Frozen = value
	case "dry":
		r.Dry = value
	case "purchaseTotal":
		r.PurchaseTotal = value
	case "factTotal":
		r.FactTotal = value
	default:
		return false
	}
	return true
}
