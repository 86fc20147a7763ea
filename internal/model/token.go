/**
 * 数据模型:令牌缓存数据
 * @author: sun977
 * @date: 2025.09.05
 * @description: Redis中存储的刷新令牌数据结构
 */
package model

import "time"

// RefreshTokenData Redis中缓存的刷新令牌数据
type RefreshTokenData struct {
	UserID    string    `json:"user_id"`    // 用户ID
	TokenID   string    `json:"token_id"`   // 令牌JTI
	Platform  string    `json:"platform"`   // 所属平台端
	ClientIP  string    `json:"client_ip"`  // 签发时的客户端IP
	IssuedAt  time.Time `json:"issued_at"`  // 签发时间
	ExpiresAt time.Time `json:"expires_at"` // 过期时间
}

// IsExpired 判断令牌数据是否已过期
func (t *RefreshTokenData) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
