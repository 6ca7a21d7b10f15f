package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// HashIP 对访客 IP 加盐做 SHA-256，结果作为匿名投票身份
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])
}

// ValidIP 判断 ClientIP 解析结果是否可用。内网与回环地址也接受，反向代理后面同样适用
func ValidIP(ip string) bool {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	return parsed != nil && !parsed.IsUnspecified()
}

// RandomToken 生成随机会话令牌，IP 不可用时作为替代身份
func RandomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// Slugify 小写化，非 [a-z0-9] 字符替换为 '-'，截断到 maxLen 个字符
func Slugify(s string, maxLen int) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(s) {
		if n >= maxLen {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
		n++
	}
	return b.String()
}
