package model

// Column 表格列配置
// 选择列只存在于前端，导出/导入时一律排除
type Column struct {
	Title    string `json:"title"`    // 列标题（中文）
	Key      string `json:"key"`      // 字段键
	ReadOnly bool   `json:"readOnly"` // 是否只读（派生列）
	IsMoney  bool   `json:"isMoney"`  // 是否金额列
}

// Columns 全部数据列，顺序即 CSV/Excel 的列顺序
var Columns = []Column{
	{Title: "日期", Key: "date", ReadOnly: true},
	{Title: "微信", Key: "wechat", IsMoney: true},
	{Title: "支付宝", Key: "alipay", IsMoney: true},
	{Title: "现金", Key: "cash", IsMoney: true},
	{Title: "美团", Key: "meituan", IsMoney: true},
	{Title: "抖音", Key: "douyin", IsMoney: true},
	{Title: "外卖", Key: "takeout", IsMoney: true},
	{Title: "总营业额", Key: "total", ReadOnly: true, IsMoney: true},
	{Title: "人数", Key: "people"},
	{Title: "人均", Key: "average", ReadOnly: true, IsMoney: true},
	{Title: "蔬菜", Key: "vegetable", IsMoney: true},
	{Title: "冻品", Key: "frozen", IsMoney: true},
	{Title: "干货", Key: "dry", IsMoney: true},
	{Title: "采购总额", Key: "purchaseTotal", ReadOnly: true, IsMoney: true},
	{Title: "实收营业额", Key: "factTotal", ReadOnly: true, IsMoney: true},
}

// ColumnByTitle 按标题查找列
func ColumnByTitle(title string) (Column, bool) {
	for _, c := range Columns {
		if c.Title == title {
			return c, true
		}
	}
	return Column{}, false
}

// EditableKeys 可编辑列的键
func EditableKeys() []string {
	keys := make([]string, 0, len(Columns))
	for _, c := range Columns {
		if !c.ReadOnly {
			keys = append(keys, c.Key)
		}
	}
	return keys
}
