package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount 金额，以分为单位的整数，避免浮点误差
type Amount int64

var centFactor = decimal.NewFromInt(100)

// cleanNumeric 清理输入字符串：只保留数字、小数点和开头的负号
// 第二个小数点之后的内容全部丢弃
func cleanNumeric(s string) string {
	var b strings.Builder
	dotSeen := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.':
			if dotSeen {
				return b.String()
			}
			dotSeen = true
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Parse 将自由格式的金额字符串转换为分
// 非法输入、空串一律视为 0
func Parse(s string) Amount {
	clean := cleanNumeric(strings.TrimSpace(s))
	if clean == "" || clean == "-" || clean == "." || clean == "-." {
		return 0
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0
	}
	return Amount(d.Mul(centFactor).Round(0).IntPart())
}

// Format 将分转换为普通金额字符串
// 金额为 0 时返回空串：0 和"无数据"在展示上是同一回事
func Format(a Amount) string {
	if a == 0 {
		return ""
	}
	return decimal.New(int64(a), -2).String()
}

// FormatSymbol 带货币符号和千分位的格式化，如 ¥1,234.56
// 负数在符号前加负号
func FormatSymbol(a Amount) string {
	if a == 0 {
		return ""
	}
	neg := a < 0
	abs := int64(a)
	if neg {
		abs = -abs
	}
	yuan := abs / 100
	fen := abs % 100

	digits := fmt.Sprintf("%d", yuan)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	s := fmt.Sprintf("¥%s.%02d", strings.Join(parts, ","), fen)
	if neg {
		return "-" + s
	}
	return s
}

// IsNegative 判断金额字符串是否为负数
func IsNegative(s string) bool {
	return Parse(s) < 0
}

// Add 两个金额字符串相加，返回普通字符串
func Add(a, b string) string {
	return Format(Parse(a) + Parse(b))
}

// Subtract 两个金额字符串相减
func Subtract(a, b string) string {
	return Format(Parse(a) - Parse(b))
}

// Divide 金额除以普通数字，保留两位小数
// 除数为空或为 0 时返回空串：除零是"无值"，不是错误
func Divide(a, b string) string {
	clean := cleanNumeric(strings.TrimSpace(b))
	if clean == "" {
		return ""
	}
	divisor, err := decimal.NewFromString(clean)
	if err != nil || divisor.IsZero() {
		return ""
	}
	dividend := decimal.New(int64(Parse(a)), -2)
	return dividend.DivRound(divisor, 2).StringFixed(2)
}

// Sum 多个金额字符串求和
// 空列表返回空串；合计为 0 同样格式化为空串
func Sum(values []string) string {
	if len(values) == 0 {
		return ""
	}
	var total Amount
	for _, v := range values {
		total += Parse(v)
	}
	return Format(total)
}

// FormatValue 对已有的金额字符串做带符号展示
func FormatValue(s string) string {
	if s == "" {
		return ""
	}
	return FormatSymbol(Parse(s))
}
