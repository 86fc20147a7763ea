package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestJWTManager() *JWTManager {
	return NewJWTManager("test-secret-key-at-least-32-characters", "neoauth", time.Hour, 24*time.Hour)
}

func TestGenerateTokenPair(t *testing.T) {
	manager := newTestJWTManager()

	pair, err := manager.GenerateTokenPair("user-1", "alice", "alice@example.com", "STORES", []string{"store_owner"})
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := manager.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "STORES", claims.Platform)
	assert.Equal(t, []string{"store_owner"}, claims.Roles)

	refreshClaims, err := manager.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", refreshClaims.Subject)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	manager := newTestJWTManager()
	other := NewJWTManager("another-secret-key-with-enough-length", "neoauth", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken("user-1", "alice", "alice@example.com", "STORES", nil)
	assert.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	manager := newTestJWTManager()

	refresh, err := manager.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	// access 与 refresh 的 audience 不同,不能互换使用
	_, err = manager.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	manager := newTestJWTManager()

	_, err := manager.ValidateAccessToken("not-a-jwt")
	assert.Error(t, err)
}

func TestGetUserIDFromToken(t *testing.T) {
	manager := newTestJWTManager()

	token, err := manager.GenerateAccessToken("user-42", "bob", "bob@example.com", "SUPERADMIN", []string{"super_admin"})
	assert.NoError(t, err)

	userID, err := manager.GetUserIDFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	roles, err := manager.GetRolesFromToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"super_admin"}, roles)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc.def.ghi"))
	assert.Equal(t, "", ExtractTokenFromHeader("Basic abc"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}
