package utils

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// MapToJSON map转出为json
func MapToJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// YuanToFen 金额由元转换为分。
// 网关的 total_fee 以分为单位，必须是正整数，超过两位小数视为非法金额。
func YuanToFen(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.New("金额格式错误")
	}
	fen := d.Mul(decimal.NewFromInt(100))
	if !fen.IsInteger() {
		return 0, errors.New("金额精度超过分")
	}
	if fen.Cmp(decimal.Zero) <= 0 {
		return 0, errors.New("金额必须大于零")
	}
	return fen.IntPart(), nil
}
