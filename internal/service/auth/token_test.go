package auth

import (
	"context"
	"testing"
	"time"

	"neoauth/internal/config"
	"neoauth/internal/model"
	pkgauth "neoauth/internal/pkg/auth"
	redisrepo "neoauth/internal/repo/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

// newTokenService 创建基于 miniredis 的令牌服务
func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := &config.JWTConfig{
		Secret:             "test-secret-key-at-least-32-chars!!",
		Issuer:             "neoauth",
		AccessTokenExpire:  time.Hour,
		RefreshTokenExpire: 24 * time.Hour,
	}
	jwtManager := pkgauth.NewJWTManager(cfg.Secret, cfg.Issuer, cfg.AccessTokenExpire, cfg.RefreshTokenExpire)
	tokenRepo := redisrepo.NewTokenRepository(client)

	return NewTokenService(jwtManager, tokenRepo, cfg)
}

func TestIssueTokenPair(t *testing.T) {
	svc := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssueTokenPair(ctx, "user-1", "alice", "alice@example.com", "STORES", "203.0.113.7", []string{"店长"})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	// 访问令牌可通过认证校验
	claims, err := svc.IsAccessTokenValid(ctx, pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, []string{"店长"}, claims.Roles)
}

func TestIssueTokenPair_EmptyUserID(t *testing.T) {
	svc := newTokenService(t)

	_, err := svc.IssueTokenPair(context.Background(), "", "", "", "", "", nil)

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestRefreshTokens_RotatesAndRevokesOld(t *testing.T) {
	svc := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssueTokenPair(ctx, "user-2", "bob", "bob@example.com", "STORES", "203.0.113.7", nil)
	assert.NoError(t, err)

	newPair, err := svc.RefreshTokens(ctx, pair.RefreshToken, "bob", "bob@example.com", "203.0.113.7", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// 旧刷新令牌已被吊销，二次刷新拒绝
	_, err = svc.RefreshTokens(ctx, pair.RefreshToken, "bob", "bob@example.com", "203.0.113.7", nil)
	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))

	// 新刷新令牌仍然可用
	_, err = svc.RefreshTokens(ctx, newPair.RefreshToken, "bob", "bob@example.com", "203.0.113.7", nil)
	assert.NoError(t, err)
}

func TestRefreshTokens_InvalidToken(t *testing.T) {
	svc := newTokenService(t)

	_, err := svc.RefreshTokens(context.Background(), "not-a-jwt", "", "", "", nil)

	assert.Error(t, err)
	assert.True(t, model.IsKind(err, model.ErrKindValidation))
}

func TestLogout_RevokesAccessAndDeletesRefresh(t *testing.T) {
	svc := newTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssueTokenPair(ctx, "user-3", "carol", "carol@example.com", "SUPERADMIN", "203.0.113.7", nil)
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, pair.AccessToken, "203.0.113.7"))

	// 访问令牌进吊销名单
	_, err = svc.IsAccessTokenValid(ctx, pair.AccessToken)
	assert.Error(t, err)

	// 刷新令牌已删除
	_, err = svc.RefreshTokens(ctx, pair.RefreshToken, "carol", "carol@example.com", "203.0.113.7", nil)
	assert.Error(t, err)
}
