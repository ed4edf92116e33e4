package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(42, "test@example.com", []string{"satis"}, []string{"cariler_goruntuleme"}, false)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, []string{"satis"}, claims.Roles)
	assert.Equal(t, []string{"cariler_goruntuleme"}, claims.Permissions)
	assert.False(t, claims.IsSuperAdmin)
}

func TestGenerateToken_SuperAdminClaim(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(1, "admin@example.com", []string{"admin"}, nil, true)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.True(t, claims.IsSuperAdmin)
}

func TestValidateToken_Invalid(t *testing.T) {
	Init("test-secret")

	_, err := ValidateToken("bu-bir-token-degil")
	assert.Error(t, err)
}

// Farklı secret ile imzalanmış token reddedilir
func TestValidateToken_WrongSecret(t *testing.T) {
	Init("secret-one")
	token, err := GenerateToken(1, "a@b.com", nil, nil, false)
	assert.NoError(t, err)

	Init("secret-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

// Geçerli token refresh edilemez
func TestRefreshToken_StillValid(t *testing.T) {
	Init("test-secret")

	token, err := GenerateToken(1, "a@b.com", nil, nil, false)
	assert.NoError(t, err)

	_, _, err = RefreshToken(token)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hala geçerli")
}

func TestRefreshToken_Malformed(t *testing.T) {
	Init("test-secret")

	_, _, err := RefreshToken("malformed")
	assert.Error(t, err)
}
