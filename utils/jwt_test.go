package utils

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "user", "test-secret")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseJWT(token, "test-secret")
	assert.NoError(t, err)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "user", claims["role"])
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "user", "secret-a")
	assert.NoError(t, err)

	claims, err := ParseJWT(token, "secret-b")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestTokenTTL(t *testing.T) {
	claims := jwt.MapClaims{"exp": float64(time.Now().Add(time.Hour).Unix())}
	ttl := TokenTTL(claims)
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	expired := jwt.MapClaims{"exp": float64(time.Now().Add(-time.Hour).Unix())}
	assert.Equal(t, time.Minute, TokenTTL(expired))

	assert.Equal(t, 72*time.Hour, TokenTTL(jwt.MapClaims{}))
}
