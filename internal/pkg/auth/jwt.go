/**
 * 工具类:JWT工具
 * @author: sun977
 * @date: 2025.08.29
 * @description: JWT工具类
 * @func:
 * 	1.创建JWT
 * 	2.验证JWT
 * 	3.刷新JWT
 */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // 引入jwt包
	"github.com/google/uuid"
)

// JWTClaims JWT声明结构
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Platform string   `json:"platform"` // 所属平台端
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey       []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey, issuer string, accessTokenTTL, refreshTokenTTL time.Duration) *JWTManager {
	if issuer == "" {
		issuer = "neoauth"
	}
	return &JWTManager{
		secretKey:       []byte(secretKey),
		issuer:          issuer,
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// GenerateAccessToken 生成访问令牌
func (j *JWTManager) GenerateAccessToken(userID, username, email, platform string, roles []string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Platform: platform,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			Subject:   userID,
			Audience:  []string{j.issuer + "-web"},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// GenerateRefreshToken 生成刷新令牌
func (j *JWTManager) GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   userID,
		Audience:  []string{j.issuer + "-refresh"},
		ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTokenTTL)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// ValidateAccessToken 验证访问令牌
func (j *JWTManager) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		// 检查令牌是否过期
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			return nil, errors.New("token has expired")
		}
		// 拒绝把刷新令牌当访问令牌使用
		if len(claims.Audience) == 0 || claims.Audience[0] != j.issuer+"-web" {
			return nil, errors.New("invalid token")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// ValidateRefreshToken 验证刷新令牌
func (j *JWTManager) ValidateRefreshToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*jwt.RegisteredClaims); ok && token.Valid {
		// 检查令牌是否过期
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
			return nil, errors.New("refresh token has expired")
		}
		// 检查是否是刷新令牌
		if len(claims.Audience) == 0 || claims.Audience[0] != j.issuer+"-refresh" {
			return nil, errors.New("invalid refresh token")
		}
		return claims, nil
	}

	return nil, errors.New("invalid refresh token")
}

// ExtractTokenFromHeader 从Authorization头中提取令牌
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}

// TokenPair 令牌对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// GenerateTokenPair 生成令牌对
func (j *JWTManager) GenerateTokenPair(userID, username, email, platform string, roles []string) (*TokenPair, error) {
	accessToken, err := j.GenerateAccessToken(userID, username, email, platform, roles)
	if err != nil {
		return nil, err
	}

	refreshToken, err := j.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(j.accessTokenTTL.Seconds()),
	}, nil
}

// GetUserIDFromToken 从访问令牌中获取用户ID
func (j *JWTManager) GetUserIDFromToken(tokenString string) (string, error) {
	claims, err := j.ValidateAccessToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// GetUserIDFromRefreshToken 从刷新令牌中获取用户ID
func (j *JWTManager) GetUserIDFromRefreshToken(tokenString string) (string, error) {
	claims, err := j.ValidateRefreshToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GetRolesFromToken 从令牌中获取用户角色
func (j *JWTManager) GetRolesFromToken(tokenString string) ([]string, error) {
	claims, err := j.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims.Roles, nil
}
