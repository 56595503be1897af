package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/config"
	"chime/internal/domain/entity"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret

	return cfg
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(newTestConfig(""))
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestJWTService_VerifyAccessToken(t *testing.T) {
	verifier, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)

	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"type":  "access",
		"roles": []string{"user", "admin", "unknown"},
	})

	claims, err := verifier.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.Roles{entity.RoleUser, entity.RoleAdmin}, claims.Roles)
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	verifier, err := NewJWTService(newTestConfig(testSecret))
	require.NoError(t, err)

	userID := uuid.New().String()
	tests := []struct {
		name  string
		token string
		want  error
	}{
		{
			name:  "wrong secret",
			token: signToken(t, "another_secret", jwt.MapClaims{"sub": userID, "exp": time.Now().Add(time.Hour).Unix()}),
			want:  ErrInvalidToken,
		},
		{
			name:  "expired",
			token: signToken(t, testSecret, jwt.MapClaims{"sub": userID, "exp": time.Now().Add(-time.Minute).Unix()}),
			want:  ErrInvalidToken,
		},
		{
			name:  "missing expiry",
			token: signToken(t, testSecret, jwt.MapClaims{"sub": userID}),
			want:  ErrInvalidToken,
		},
		{
			name:  "refresh token",
			token: signToken(t, testSecret, jwt.MapClaims{"sub": userID, "type": "refresh", "exp": time.Now().Add(time.Hour).Unix()}),
			want:  ErrUnexpectedClaims,
		},
		{
			name:  "subject not a uuid",
			token: signToken(t, testSecret, jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()}),
			want:  ErrUnexpectedClaims,
		},
		{
			name:  "garbage",
			token: "not-a-token",
			want:  ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
