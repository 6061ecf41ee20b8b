package sign

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// Generate 生成签名（用于请求或验证）
// 规则：按 key 升序拼接 k=v&...&key=密钥，MD5 后全部大写。
// 空值与 sign 字段不参与签名，参数值若带 URL 编码先还原为原文。
func Generate(params map[string]string, secretKey string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "sign" || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(unescape(params[k]))
		if i < len(keys)-1 {
			sb.WriteString("&")
		}
	}
	sb.WriteString("&key=")
	sb.WriteString(secretKey)

	hash := md5.Sum([]byte(sb.String()))
	return strings.ToUpper(hex.EncodeToString(hash[:]))
}

// Verify 验证签名是否匹配
func Verify(params map[string]string, secretKey string) bool {
	receivedSign := params["sign"]
	if receivedSign == "" {
		return false
	}
	expectedSign := Generate(params, secretKey)
	return Equal(receivedSign, expectedSign)
}

// Equal 常量时间比较两个签名（大小写不敏感）
func Equal(a, b string) bool {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// 还原百分号编码的参数值，非法编码保持原样。
// 注意 + 号不作空格处理，网关侧按原文参与签名。
func unescape(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}
