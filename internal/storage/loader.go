package storage

import (
	"encoding/json"
	"log"
	"time"

	"github.com/vonggiunfa/pfjc-bi/internal/model"
)

// RowsKey 行集合的存储键
const RowsKey = "sales-report-data"

// LoadRows 读取已保存的行集合
// 对任何损坏形态自我修复：调用方拿到的永远是非空、类型正确的行数组，
// 绝不向外抛错；所有修复/重置路径都会同步清理或改写存储键
func LoadRows(kv KV) []model.ReportRow {
	raw, ok, err := kv.Get(RowsKey)
	if err != nil {
		log.Printf("读取存储失败，使用默认行: %v", err)
		return []model.ReportRow{model.NewRow()}
	}
	if !ok {
		return []model.ReportRow{model.NewRow()}
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("存储数据解析失败，重置: %v", err)
		reset(kv)
		return []model.ReportRow{model.NewRow()}
	}

	switch v := parsed.(type) {
	case []any:
		if len(v) == 0 {
			return []model.ReportRow{model.NewRow()}
		}
		rows := make([]model.ReportRow, 0, len(v))
		for _, el := range v {
			if row, valid := ValidateElement(el); valid {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			log.Printf("存储的 %d 条数据全部无效，重置", len(v))
			reset(kv)
			return []model.ReportRow{model.NewRow()}
		}
		return rows
	case map[string]any:
		// 单条记录意外没包数组：包一层、回写修复后的形态
		if row, valid := ValidateElement(v); valid {
			rows := []model.ReportRow{row}
			if data, err := json.Marshal(rows); err == nil {
				if err := kv.Set(RowsKey, data); err != nil {
					log.Printf("回写修复数据失败: %v", err)
				}
			}
			return rows
		}
		log.Printf("存储的数据不是数组且无法修复，重置")
		reset(kv)
		return []model.ReportRow{model.NewRow()}
	default:
		log.Printf("存储的数据不是数组，重置")
		reset(kv)
		return []model.ReportRow{model.NewRow()}
	}
}

// SaveRows 将行集合写入存储
// 空集合退化为单条默认行，返回实际落盘的内容
func SaveRows(kv KV, rows []model.ReportRow) ([]model.ReportRow, error) {
	if len(rows) == 0 {
		rows = []model.ReportRow{model.NewRow()}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return nil, err
	}
	if err := kv.Set(RowsKey, data); err != nil {
		return nil, err
	}
	return rows, nil
}

// ValidateElement 校验反序列化出的单个元素
// 合法元素必须是同时带 id 和 date 键的对象；日期字符串无法解析时取当前时间
func ValidateElement(el any) (model.ReportRow, bool) {
	m, ok := el.(map[string]any)
	if !ok {
		return model.ReportRow{}, false
	}
	if _, ok := m["id"]; !ok {
		return model.ReportRow{}, false
	}
	if _, ok := m["date"]; !ok {
		return model.ReportRow{}, false
	}

	row := model.ReportRow{
		ID:   stringField(m, "id"),
		Date: parseStoredDate(m["date"]),
	}
	for _, key := range []string{
		"wechat", "alipay", "cash", "meituan", "douyin", "takeout",
		"total", "people", "average",
		"vegetable", "frozen", "dry", "purchaseTotal", "factTotal",
	} {
		row.Set(key, stringField(m, key))
	}
	return row, true
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// parseStoredDate 日期字符串重新水化为时间值，失败取当前时间
func parseStoredDate(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Now()
}

func reset(kv KV) {
	if err := kv.Remove(RowsKey); err != nil {
		log.Printf("清理存储键失败: %v", err)
	}
}
