/**
 * 令牌仓库层:令牌缓存数据访问
 * @author: sun977
 * @date: 2025.09.05
 * @description: 刷新令牌与令牌黑名单的Redis存储(适合多实例部署)
 * @func: 单纯数据访问,不应该包含业务逻辑
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"neoauth/internal/model"

	"github.com/go-redis/redis/v8"
)

// TokenRepository Redis令牌存储库
type TokenRepository struct {
	client *redis.Client
}

// NewTokenRepository 创建令牌存储库实例
func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// StoreRefreshToken 存储用户刷新令牌
// 单用户单刷新令牌，重复登录会覆盖旧令牌
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, userID string, tokenData *model.RefreshTokenData, expiration time.Duration) error {
	// 序列化令牌数据
	data, err := json.Marshal(tokenData)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token data: %w", err)
	}

	// 生成令牌键
	tokenKey := r.getRefreshTokenKey(userID)

	// 存储到Redis
	err = r.client.Set(ctx, tokenKey, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// GetRefreshToken 获取用户刷新令牌
func (r *TokenRepository) GetRefreshToken(ctx context.Context, userID string) (*model.RefreshTokenData, error) {
	tokenKey := r.getRefreshTokenKey(userID)

	// 从Redis获取数据
	data, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // 不存在时返回 nil，让业务层处理
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	// 反序列化令牌数据
	var tokenData model.RefreshTokenData
	err = json.Unmarshal([]byte(data), &tokenData)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token data: %w", err)
	}

	return &tokenData, nil
}

// DeleteRefreshToken 删除用户刷新令牌（登出）
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, userID string) error {
	tokenKey := r.getRefreshTokenKey(userID)

	err := r.client.Del(ctx, tokenKey).Err()
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}

// RevokeToken 撤销令牌（添加到黑名单），值为撤销时间戳
func (r *TokenRepository) RevokeToken(ctx context.Context, tokenID string, expiration time.Duration) error {
	revokedKey := r.getRevokedTokenKey(tokenID)

	revokedAt := time.Now().Unix()
	err := r.client.Set(ctx, revokedKey, revokedAt, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked 检查令牌是否已被撤销
func (r *TokenRepository) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	revokedKey := r.getRevokedTokenKey(tokenID)

	exists, err := r.client.Exists(ctx, revokedKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return exists > 0, nil
}

// getRefreshTokenKey 生成刷新令牌键 [KEY:refresh_token:user:{userID}]
func (r *TokenRepository) getRefreshTokenKey(userID string) string {
	return fmt.Sprintf("refresh_token:user:%s", userID)
}

// getRevokedTokenKey 生成撤销令牌键 [KEY:revoked:token:{tokenID}]
func (r *TokenRepository) getRevokedTokenKey(tokenID string) string {
	return fmt.Sprintf("revoked:token:%s", tokenID)
}
