package middleware

import (
	"sync"

	"neoauth/internal/config"
	"neoauth/internal/service/auth"
)

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	tokenService    *auth.TokenService     // 令牌服务，用于JWT令牌验证与吊销检查
	securityConfig  *config.SecurityConfig // 安全配置，用于中间件配置
	rateLimiter     RateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
func NewMiddlewareManager(tokenService *auth.TokenService, securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		tokenService:   tokenService,
		securityConfig: securityConfig,
	}
}
