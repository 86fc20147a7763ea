/**
 * 中间件:认证相关中间件
 * @author: sun977
 * @date: 2025.10.10
 * @description: 定义认证相关中间件
 * @func:
 *   - GinJWTAuthMiddleware: Gin JWT认证中间件
 *   - GinRequireAnyRole: 检查用户是否具有任意角色中间件
 *   - extractTokenFromGinHeader: 从Gin请求头中提取JWT令牌
 */
package middleware

import (
	"errors"
	"net/http"

	"neoauth/internal/model"
	pkgauth "neoauth/internal/pkg/auth"
	"neoauth/internal/pkg/logger"
	"neoauth/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// JWT认证相关中间件
// =============================================================================

// GinJWTAuthMiddleware Gin JWT认证中间件
// 验证请求头中的JWT令牌，并将用户信息存储到Gin上下文中
// 使用方式: router.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.GetClientIP(c)
		requestID := c.GetHeader("X-Request-ID")
		userAgent := c.GetHeader("User-Agent")

		// 从请求头中提取访问令牌
		accessToken, err := extractTokenFromGinHeader(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "missing or invalid authorization header",
			})
			c.Abort()
			return
		}

		// 验证令牌有效性和吊销状态
		claims, err := m.tokenService.IsAccessTokenValid(c.Request.Context(), accessToken)
		if err != nil {
			logger.LogError(err, requestID, "", clientIP, "token_validation", "GET", map[string]interface{}{
				"operation":    "token_validation",
				"client_ip":    clientIP,
				"user_agent":   userAgent,
				"X-Request-ID": requestID,
				"timestamp":    logger.NowFormatted(),
			})
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code:    http.StatusUnauthorized,
				Status:  "error",
				Message: "invalid or expired token",
			})
			c.Abort()
			return
		}

		// 将用户信息存储到Gin上下文，供后续处理器使用
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("platform", claims.Platform)
		c.Set("roles", claims.Roles)

		c.Next()
	}
}

// GinRequireAnyRole 角色检查中间件
// 要求当前用户至少具有指定角色之一，必须在 GinJWTAuthMiddleware 之后使用
func (m *MiddlewareManager) GinRequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("roles")
		userRoles, ok := v.([]string)
		if !exists || !ok {
			c.JSON(http.StatusForbidden, model.APIResponse{
				Code:    http.StatusForbidden,
				Status:  "error",
				Message: "insufficient permissions",
			})
			c.Abort()
			return
		}

		for _, required := range roles {
			for _, have := range userRoles {
				if required == have {
					c.Next()
					return
				}
			}
		}

		logger.LogBusinessOperation("role_check", utils.GetCurrentUserIDFromGinContext(c), "", utils.GetClientIP(c), c.GetHeader("X-Request-ID"), "failed", "required role missing", map[string]interface{}{
			"required_roles": roles,
			"user_roles":     userRoles,
			"path":           c.Request.URL.Path,
		})

		c.JSON(http.StatusForbidden, model.APIResponse{
			Code:    http.StatusForbidden,
			Status:  "error",
			Message: "insufficient permissions",
		})
		c.Abort()
	}
}

// extractTokenFromGinHeader 从Gin请求头中提取JWT令牌
func extractTokenFromGinHeader(c *gin.Context) (string, error) {
	token := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		return "", errors.New("authorization header must carry a bearer token")
	}
	return token, nil
}
