package jwt_test

import (
	"testing"
	"time"

	customjwt "github.com/magabrotheeeer/eventsity/internal/lib/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", claims.UserUID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestMaker_ExpiredToken(t *testing.T) {
	// Отрицательный TTL — токен истекает в момент выпуска
	maker := customjwt.NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("uid-123", "test@example.com")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestMaker_WrongSecret(t *testing.T) {
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)
	other := customjwt.NewJWTMaker("another-secret", time.Hour)

	token, err := maker.GenerateToken("uid-123", "test@example.com")
	require.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestMaker_GarbageToken(t *testing.T) {
	maker := customjwt.NewJWTMaker("test-secret", time.Hour)

	claims, err := maker.ParseToken("not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
