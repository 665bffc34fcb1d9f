package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:   "test-secret-key",
		Issuer:   "task-manager-api",
		Audience: "task-manager-clients",
		TTL:      3 * time.Hour,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	now := time.Now()

	issued, err := GenerateToken(cfg, userID, "alice", "alice@example.com", now)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.TokenID)
	assert.WithinDuration(t, now.Add(3*time.Hour), issued.ExpiresAt, time.Second)

	userCtx, err := ValidateToken(issued.Token, cfg)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.ID)
	assert.Equal(t, "alice", userCtx.Username)
	assert.Equal(t, "alice@example.com", userCtx.Email)
	assert.Equal(t, issued.TokenID, userCtx.TokenID)

	// Bearer prefix ก็รับได้
	_, err = ValidateToken("Bearer "+issued.Token, cfg)
	assert.NoError(t, err)
}

func TestTokenCarriesStandardClaims(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	issued, err := GenerateToken(cfg, userID, "alice", "alice@example.com", time.Now())
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(issued.Token, claims)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims["sub"])
	assert.Equal(t, "alice", claims["unique_name"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, issued.TokenID, claims["jti"])
	assert.Equal(t, cfg.Issuer, claims["iss"])
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "exp")
}

func TestValidateTokenRejects(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()

	expired, err := GenerateToken(cfg, userID, "alice", "a@example.com", time.Now().Add(-4*time.Hour))
	require.NoError(t, err)

	otherSecret := cfg
	otherSecret.Secret = "another-secret"
	forged, err := GenerateToken(otherSecret, userID, "alice", "a@example.com", time.Now())
	require.NoError(t, err)

	otherAudience := cfg
	otherAudience.Audience = "someone-else"
	wrongAudience, err := GenerateToken(otherAudience, userID, "alice", "a@example.com", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"missing", "", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"expired", expired.Token, ErrExpiredToken},
		{"wrong secret", forged.Token, ErrInvalidToken},
		{"wrong audience", wrongAudience.Token, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header), tt.header)
	}
}
