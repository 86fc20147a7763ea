/**
 * 中间件:安全中间件
 * @author: sun977
 * @date: 2025.10.10
 * @description: 定义安全中间件
 * @func:
 *   - GinCORSMiddleware CORS跨域资源共享中间件,处理跨域请求，设置必要的CORS头部信息
 *   - GinSecurityHeadersMiddleware 安全头部中间件,设置必要的安全头部信息，防止常见的安全漏洞
 *   - GinRequestIDMiddleware 请求ID中间件,为每个请求添加唯一的请求ID,方便日志跟踪和调试
 */
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GinCORSMiddleware CORS跨域资源共享中间件
// 处理跨域请求，按配置设置必要的CORS头部信息
func (m *MiddlewareManager) GinCORSMiddleware() gin.HandlerFunc {
	cors := &m.securityConfig.CORS

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// 允许的来源：配置包含 * 或与请求来源精确匹配
		allowed := ""
		for _, o := range cors.AllowedOrigins {
			if o == "*" {
				allowed = "*"
				break
			}
			if o == origin {
				allowed = origin
				break
			}
		}
		if allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
		}

		if len(cors.AllowedMethods) > 0 {
			c.Header("Access-Control-Allow-Methods", strings.Join(cors.AllowedMethods, ", "))
		}
		if len(cors.AllowedHeaders) > 0 {
			c.Header("Access-Control-Allow-Headers", strings.Join(cors.AllowedHeaders, ", "))
		}
		if cors.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if cors.MaxAge > 0 {
			c.Header("Access-Control-Max-Age", strconv.Itoa(cors.MaxAge))
		}

		// 处理预检请求（OPTIONS方法）
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// GinSecurityHeadersMiddleware 安全头中间件
// 添加各种安全相关的HTTP头部，提高应用安全性
func (m *MiddlewareManager) GinSecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// X-Content-Type-Options: 防止MIME类型嗅探攻击
		c.Header("X-Content-Type-Options", "nosniff")

		// X-Frame-Options: 防止点击劫持攻击
		c.Header("X-Frame-Options", "DENY")

		// X-XSS-Protection: 启用浏览器XSS过滤器
		c.Header("X-XSS-Protection", "1; mode=block")

		// Referrer-Policy: 控制Referer头的发送策略
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Strict-Transport-Security: 强制HTTPS（仅在HTTPS环境下设置）
		if c.Request.TLS != nil || c.Request.Header.Get("X-Forwarded-Proto") == "https" {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		// Server: 隐藏服务器信息
		c.Header("Server", "NeoAuth")

		c.Next()
	}
}

// GinRequestIDMiddleware 请求ID中间件
// 为每个请求生成唯一ID，便于日志追踪和问题排查
func (m *MiddlewareManager) GinRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 检查是否已有请求ID（可能来自负载均衡器或代理）
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// 设置请求ID到上下文中
		c.Set("request_id", requestID)

		// 设置响应头
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}
