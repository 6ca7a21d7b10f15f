package middleware

import (
	"gameforge/internal/utils"
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	VoterKey         = "voter"
	voterTokenKey    = "voter_token"
	VoterSourceKey   = "voter_source"
	VoterFromIP      = "ip"
	VoterFromSession = "session"
)

// VoterIdentity 计算匿名投票身份：ip+salt 的 SHA-256。
// IP 无法解析时退化为会话中的随机令牌，同一个人换浏览器即可重复投票，属已知限制。
func VoterIdentity(salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if utils.ValidIP(ip) {
			c.Set(VoterKey, utils.HashIP(ip, salt))
			c.Set(VoterSourceKey, VoterFromIP)
			c.Next()
			return
		}

		session := sessions.Default(c)
		token, _ := session.Get(voterTokenKey).(string)
		if token == "" {
			token = utils.RandomToken()
			session.Set(voterTokenKey, token)
			if err := session.Save(); err != nil {
				log.Printf("保存投票会话失败: %v", err)
			}
		}
		c.Set(VoterKey, utils.HashIP(token, salt))
		c.Set(VoterSourceKey, VoterFromSession)
		c.Next()
	}
}

// Voter 取出 VoterIdentity 设置的身份
func Voter(c *gin.Context) string {
	return c.GetString(VoterKey)
}
