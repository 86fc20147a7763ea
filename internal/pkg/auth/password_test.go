package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(nil)

	hash, err := pm.HashPassword("s3cret-Passw0rd")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-Passw0rd", hash)

	ok, err := pm.VerifyPassword("s3cret-Passw0rd", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = pm.VerifyPassword("wrong-password", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	pm := NewPasswordManager(nil)

	h1, err := pm.HashPassword("same-input")
	assert.NoError(t, err)
	h2, err := pm.HashPassword("same-input")
	assert.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	pm := NewPasswordManager(nil)

	_, err := pm.VerifyPassword("whatever", "not-an-encoded-hash")
	assert.Error(t, err)
}

func TestGenerateNumericCode(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		code, err := GenerateNumericCode(length)
		assert.NoError(t, err)
		assert.Len(t, code, length)
		for _, ch := range code {
			assert.True(t, ch >= '0' && ch <= '9')
		}
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("Abcdef1!"))
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.Error(t, ValidatePasswordStrength("onlyletters"))
	assert.Error(t, ValidatePasswordStrength("12345678"))
}
