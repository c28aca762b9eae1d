package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(7, "0xabc", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "0xabc", claims.Address)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(7, "0xabc", "secret")
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	_, err := ParseJWT("not.a.token", "secret")
	assert.Error(t, err)
}

func TestListPageKey(t *testing.T) {
	key := ListPageKey("stakes:user:7:status:all", 2, 10, "created_at", "desc")
	assert.Equal(t, "stakes:user:7:status:all:page:2:size:10:sort:created_at:desc", key)
}
