/*
 * @author: sun977
 * @date: 2025.09.11
 * @description: 令牌业务逻辑
 * @func:
 * 1.签发令牌对(刷新令牌落Redis)
 * 2.刷新令牌(单活跃刷新令牌,旧JTI进吊销名单)
 * 3.登出(吊销访问令牌并清除刷新令牌)
 */

package auth

import (
	"context"
	"time"

	"neoauth/internal/config"
	"neoauth/internal/model"
	"neoauth/internal/pkg/auth"
	"neoauth/internal/pkg/logger"
	redisrepo "neoauth/internal/repo/redis"
)

// TokenService 令牌服务
// 每个用户同一时刻只有一个活跃的刷新令牌，刷新时轮换并吊销旧令牌
type TokenService struct {
	jwtManager *auth.JWTManager           // JWT管理器
	tokenRepo  *redisrepo.TokenRepository // 令牌缓存仓库
	cfg        *config.JWTConfig          // JWT配置
}

// NewTokenService 创建令牌服务实例
func NewTokenService(jwtManager *auth.JWTManager, tokenRepo *redisrepo.TokenRepository, cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		jwtManager: jwtManager,
		tokenRepo:  tokenRepo,
		cfg:        cfg,
	}
}

// IssueTokenPair 为用户签发访问令牌和刷新令牌
// 刷新令牌元数据写入Redis，覆盖该用户之前的刷新令牌
func (s *TokenService) IssueTokenPair(ctx context.Context, userID, username, email, platform, clientIP string, roles []string) (*model.TokenPairResponse, error) {
	if userID == "" {
		return nil, model.NewValidationError("user_id", "", "user_id must not be empty")
	}

	pair, err := s.jwtManager.GenerateTokenPair(userID, username, email, platform, roles)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	refreshClaims, err := s.jwtManager.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		return nil, model.NewStorageError(err)
	}

	now := time.Now()
	tokenData := &model.RefreshTokenData{
		UserID:    userID,
		TokenID:   refreshClaims.ID,
		Platform:  platform,
		ClientIP:  clientIP,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.RefreshTokenExpire),
	}
	if err := s.tokenRepo.StoreRefreshToken(ctx, userID, tokenData, s.cfg.RefreshTokenExpire); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("issue_token_pair", "", userID, clientIP, "", "success", "token pair issued", map[string]interface{}{
		"platform": platform,
		"jti":      refreshClaims.ID,
	})

	return &model.TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}, nil
}

// RefreshTokens 使用刷新令牌换发新的令牌对
// 刷新令牌必须是该用户当前活跃的那一个，轮换后旧JTI立即吊销
func (s *TokenService) RefreshTokens(ctx context.Context, refreshToken, username, email, clientIP string, roles []string) (*model.TokenPairResponse, error) {
	if refreshToken == "" {
		return nil, model.NewValidationError("refresh_token", "", "refresh_token must not be empty")
	}

	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, model.NewValidationError("refresh_token", "", "refresh token is invalid or expired")
	}
	userID := claims.Subject

	revoked, err := s.tokenRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if revoked {
		return nil, model.NewValidationError("refresh_token", "", "refresh token has been revoked")
	}

	stored, err := s.tokenRepo.GetRefreshToken(ctx, userID)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if stored == nil || stored.TokenID != claims.ID || stored.IsExpired() {
		return nil, model.NewValidationError("refresh_token", "", "refresh token is invalid or expired")
	}

	// 旧刷新令牌进吊销名单，吊销期覆盖其剩余有效期
	if err := s.tokenRepo.RevokeToken(ctx, claims.ID, s.cfg.RefreshTokenExpire); err != nil {
		return nil, model.NewStorageError(err)
	}

	logger.LogBusinessOperation("refresh_tokens", "", userID, clientIP, "", "success", "refresh token rotated", map[string]interface{}{
		"old_jti": claims.ID,
	})

	return s.IssueTokenPair(ctx, userID, username, email, stored.Platform, clientIP, roles)
}

// Logout 登出
// 吊销当前访问令牌JTI并删除用户的刷新令牌
func (s *TokenService) Logout(ctx context.Context, accessToken, clientIP string) error {
	if accessToken == "" {
		return model.NewValidationError("access_token", "", "access_token must not be empty")
	}

	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return model.NewValidationError("access_token", "", "access token is invalid or expired")
	}

	if err := s.tokenRepo.RevokeToken(ctx, claims.ID, s.cfg.AccessTokenExpire); err != nil {
		return model.NewStorageError(err)
	}
	if err := s.tokenRepo.DeleteRefreshToken(ctx, claims.UserID); err != nil {
		return model.NewStorageError(err)
	}

	logger.LogBusinessOperation("logout", "", claims.UserID, clientIP, "", "success", "user logged out", map[string]interface{}{
		"jti": claims.ID,
	})

	return nil
}

// IsAccessTokenValid 校验访问令牌是否有效且未被吊销
// 认证中间件使用
func (s *TokenService) IsAccessTokenValid(ctx context.Context, accessToken string) (*auth.JWTClaims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, model.NewValidationError("access_token", "", "access token is invalid or expired")
	}
	revoked, err := s.tokenRepo.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, model.NewStorageError(err)
	}
	if revoked {
		return nil, model.NewValidationError("access_token", "", "access token has been revoked")
	}
	return claims, nil
}
