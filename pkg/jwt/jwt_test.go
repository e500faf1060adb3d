package jwt_test

import (
	"testing"
	"time"

	"swasthya-portal/config"
	"swasthya-portal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour, RefreshExpiry: 24 * time.Hour})

	token, tokenID, err := svc.GenerateAccessToken("P001", "patient")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "P001", claims.UserID)
	require.Equal(t, "patient", claims.Role)
	require.Equal(t, jwt.AccessToken, claims.TokenType)
	require.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_RejectsOtherSecretAndExpired(t *testing.T) {
	issuer := jwt.NewJWTService(config.JWTConfig{Secret: "one", AccessExpiry: time.Hour})
	other := jwt.NewJWTService(config.JWTConfig{Secret: "two", AccessExpiry: time.Hour})

	token, _, err := issuer.GenerateAccessToken("D001", "doctor")
	require.NoError(t, err)
	_, err = other.ValidateToken(token)
	require.Error(t, err)

	expired := jwt.NewJWTService(config.JWTConfig{Secret: "one", AccessExpiry: -time.Minute})
	token, _, err = expired.GenerateAccessToken("D001", "doctor")
	require.NoError(t, err)
	_, err = expired.ValidateToken(token)
	require.Error(t, err)
}
