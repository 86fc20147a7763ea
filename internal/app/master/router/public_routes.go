/**
 * 路由:公共路由
 * @author: sun977
 * @date: 2025.10.10
 * @description: 不需要认证的认证入口路由,发码/验码/刷新令牌走严格限流
 * @func:
 */

package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公共路由（不需要认证）
func (r *Router) setupPublicRoutes(v1 *gin.RouterGroup) {
	auth := v1.Group("/auth")
	{
		// 验证码签发与校验，按流程类型区分
		otp := auth.Group("/otp")
		otp.Use(r.middlewareManager.GinAuthRateLimitMiddleware())
		{
			otp.POST("/:user_type/request", r.otpHandler.RequestOtp)
			otp.POST("/:user_type/validate", r.otpHandler.ValidateOtp)
		}

		// 令牌刷新，刷新令牌本身即凭证
		token := auth.Group("/token")
		token.Use(r.middlewareManager.GinAuthRateLimitMiddleware())
		{
			token.POST("/refresh", r.tokenHandler.Refresh)
			token.POST("/validate", r.tokenHandler.Validate)
		}

		// 登出需要有效的访问令牌
		authenticated := auth.Group("")
		authenticated.Use(r.middlewareManager.GinJWTAuthMiddleware())
		{
			authenticated.POST("/logout", r.tokenHandler.Logout)
		}
	}
}
