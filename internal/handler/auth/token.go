// 令牌接口
package auth

import (
	"net/http"

	"neoauth/internal/model"
	pkgauth "neoauth/internal/pkg/auth"
	"neoauth/internal/pkg/utils"
	authsvc "neoauth/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// TokenHandler 令牌接口处理器
type TokenHandler struct {
	tokenService *authsvc.TokenService
}

// NewTokenHandler 创建令牌处理器实例
func NewTokenHandler(tokenService *authsvc.TokenService) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

// Refresh 刷新令牌
// @Summary 刷新令牌
// @Description 使用刷新令牌换发新的令牌对,旧刷新令牌立即吊销
// @Tags 令牌
// @Accept json
// @Produce json
// @Param request body model.RefreshTokenRequest true "刷新令牌请求"
// @Success 200 {object} model.APIResponse{data=model.TokenPairResponse} "刷新成功"
// @Failure 400 {object} model.APIResponse "刷新令牌无效或已吊销"
// @Router /api/v1/auth/token/refresh [post]
func (h *TokenHandler) Refresh(c *gin.Context) {
	var req model.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	clientIP := utils.GetClientIPFromContext(c.Request.Context())
	resp, err := h.tokenService.RefreshTokens(c.Request.Context(), req.RefreshToken, "", "", clientIP, nil)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "token refreshed", resp)
}

// Validate 校验访问令牌
// @Summary 校验访问令牌
// @Description 校验访问令牌是否有效且未被吊销,返回令牌中的用户信息
// @Tags 令牌
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.APIResponse "令牌有效"
// @Failure 400 {object} model.APIResponse "令牌无效或已吊销"
// @Router /api/v1/auth/token/validate [post]
func (h *TokenHandler) Validate(c *gin.Context) {
	token := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		writeError(c, model.NewValidationError("authorization", "", "authorization header must carry a bearer token"))
		return
	}

	claims, err := h.tokenService.IsAccessTokenValid(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "token is valid", gin.H{
		"user_id":  claims.UserID,
		"username": claims.Username,
		"platform": claims.Platform,
		"roles":    claims.Roles,
	})
}

// Logout 登出
// @Summary 登出
// @Description 吊销当前访问令牌并删除用户的刷新令牌
// @Tags 令牌
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.APIResponse "登出成功"
// @Failure 400 {object} model.APIResponse "访问令牌无效"
// @Router /api/v1/auth/logout [post]
func (h *TokenHandler) Logout(c *gin.Context) {
	token := pkgauth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
	if token == "" {
		writeError(c, model.NewValidationError("authorization", "", "authorization header must carry a bearer token"))
		return
	}

	clientIP := utils.GetClientIPFromContext(c.Request.Context())
	if err := h.tokenService.Logout(c.Request.Context(), token, clientIP); err != nil {
		writeError(c, err)
		return
	}

	writeSuccess(c, http.StatusOK, "logged out", nil)
}
