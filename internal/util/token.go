package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateAuthToken 生成一个40位十六进制的不透明令牌
// 令牌本身不携带任何信息，有效性完全由 auth_tokens 表决定
func GenerateAuthToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("生成随机令牌失败: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
