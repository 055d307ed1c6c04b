package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/au-connect/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	user := &domain.User{ID: "5d0b8c6e-7a4c-4f43-9c5e-2f1b8d1f0a11", Role: domain.RoleStudent}

	token, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, token.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleStudent, claims.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateToken(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ParseToken(token.Value)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.ParseToken(token.Value)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	token, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.Role("staff")})
	require.NoError(t, err)

	_, err = tm.ParseToken(token.Value)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "secret123"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
