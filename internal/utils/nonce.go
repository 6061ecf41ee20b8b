package utils

import (
	"crypto/rand"
	"math/big"
)

const nonceCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateNonce 生成指定长度的随机字符串（密码学随机源）。
// 32 位字母数字约 190 bit 熵，满足防重放要求。
func GenerateNonce(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(nonceCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("nonce: crypto/rand unavailable: " + err.Error())
		}
		buf[i] = nonceCharset[n.Int64()]
	}
	return string(buf)
}

// IsValidNonce 检查 nonce 格式：最少8位，只允许数字字母
func IsValidNonce(nonce string) bool {
	if len(nonce) < 8 {
		return false
	}
	for _, r := range nonce {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}
