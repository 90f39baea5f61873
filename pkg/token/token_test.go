package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestGenerateAndValidate(t *testing.T) {
	signed, err := Generate(testSecret, "507f1f77bcf86cd799439011")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Validate(testSecret, signed)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := Generate(testSecret, "507f1f77bcf86cd799439011")
	require.NoError(t, err)

	claims, err := Validate("another-secret", signed)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateRejectsGarbage(t *testing.T) {
	claims, err := Validate(testSecret, "not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = Validate(testSecret, "")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
