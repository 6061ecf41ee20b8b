package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationMsg 将字段校验错误转换为可读提示
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "字段必填"
	case "max":
		return fmt.Sprintf("长度不能超过 %s", fe.Param())
	case "min":
		return fmt.Sprintf("长度不能小于 %s", fe.Param())
	case "numeric":
		return "必须为数字"
	default:
		return fmt.Sprintf("不满足校验规则 %s", fe.Tag())
	}
}
