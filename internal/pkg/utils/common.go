/*
 * @author: sun977
 * @date: 2025.11.12
 * @description: 通用的工具包
 * @func:
 */

package utils

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ContextKey 类型用于标准上下文键的定义，避免使用裸字符串造成键冲突
type ContextKey string

// ContextKeyClientIP 标准上下文中存储客户端IP的统一键
const ContextKeyClientIP ContextKey = "client_ip"

// GetCurrentUserIDFromGinContext 从 Gin 上下文中提取当前用户ID
// 用于从Gin上下文提取当前用户ID，如果不存在则返回空字符串，轻校验
// 来源：user_id 最初是JWT中间件写入Gin上下文 GinJWTAuthMiddleware() 中
func GetCurrentUserIDFromGinContext(c *gin.Context) string {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(string); ok2 {
			return id
		}
	}
	return ""
}

// GetClientIPFromContext 从标准上下文读取客户端IP（统一键）
// 说明：
// - 使用 ContextKeyClientIP 作为唯一键，保证读写一致，跨包可用
// - 如果不存在或类型不匹配，返回空字符串
func GetClientIPFromContext(ctx context.Context) string {
	v := ctx.Value(ContextKeyClientIP)
	if ip, ok := v.(string); ok {
		return ip
	}
	return ""
}

// GetClientIP 从 Gin 请求中提取标准化后的客户端IP
// 优先级：X-Forwarded-For 首段 > X-Real-IP > 连接对端地址
func GetClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return NormalizeIP(xff)
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return NormalizeIP(realIP)
	}
	return NormalizeIP(c.ClientIP())
}

// PageOffset 根据页码和每页数量计算偏移量
// page 从 1 开始，page<=0 时按第一页处理
func PageOffset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}

// NormalizePage 校正分页参数，返回修正后的页码和每页数量
func NormalizePage(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
