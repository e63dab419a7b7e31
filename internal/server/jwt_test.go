package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testSecret,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.GetOwner())
	assert.Equal(t, "alice", claims.Subject)
}

func TestJWTService_GenerateToken_EmptyOwner(t *testing.T) {
	service := setupTestJWTService(t, 24)
	_, err := service.GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_Expiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(30 * time.Minute) }
	_, err = service.ValidateToken(token)
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "a-completely-different-secret-value", ExpirationHours: 24})

	foreign, err := other.GenerateToken("alice")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: foreign},
		{name: "none algorithm", token: noneToken},
		{name: "missing subject", token: noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("bob")
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", getter.GetOwner())

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}

func TestJWTService_Issuer(t *testing.T) {
	cfg := &config.JWTConfig{Secret: testSecret, ExpirationHours: 1, Issuer: "resume-builder"}
	service := NewJWTService(cfg)

	token, err := service.GenerateToken("alice")
	require.NoError(t, err)
	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "resume-builder", claims.Issuer)

	// Same secret, different issuer.
	other := NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: 1, Issuer: "someone-else"})
	foreign, err := other.GenerateToken("alice")
	require.NoError(t, err)
	_, err = service.ValidateToken(foreign)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issuer")

	// Without a configured issuer any issuer is accepted.
	open := setupTestJWTService(t, 1)
	_, err = open.ValidateToken(foreign)
	assert.NoError(t, err)
}
