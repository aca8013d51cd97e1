package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/cache"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

func TestIssue_PayloadCarriesIdentity(t *testing.T) {
	svc := NewTokenService("secret", 0)
	require.Equal(t, DefaultTokenTTL, svc.TTL())

	token, claims, err := svc.Issue(&models.User{ID: 7, Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)
	require.NotEmpty(t, claims.RegisteredClaims.ID)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, float64(7), payload["id"])
	require.Equal(t, "admin", payload["username"])
	require.Equal(t, "admin", payload["role"])

	exp := int64(payload["exp"].(float64))
	iat := int64(payload["iat"].(float64))
	require.Equal(t, int64(12*time.Hour/time.Second), exp-iat)
}

func TestParse_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	token, _, err := svc.Issue(&models.User{ID: 1, Username: "ana", Role: "admin"})
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	require.Equal(t, uint(1), claims.ID)
	require.Equal(t, "ana", claims.Username)
}

func TestParse_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue(&models.User{ID: 1, Username: "ana", Role: "admin"})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestParse_Invalid(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenService("other", time.Hour)
	token, _, err := other.Issue(&models.User{ID: 1, Username: "ana", Role: "admin"})
	require.NoError(t, err)
	_, err = svc.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"id": 1, "role": "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Parse(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)
	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "wrong"))
}

func TestRedisRevoker(t *testing.T) {
	ctx := context.Background()
	fake := cache.NewFake()
	r := NewRedisRevoker(fake)

	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	require.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	require.True(t, revoked)
	require.InDelta(t, time.Hour.Seconds(), fake.TTL("auth:revoked:abc").Seconds(), 5)

	// já expirado: nada a guardar
	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	revoked, err = r.IsRevoked(ctx, "old")
	require.NoError(t, err)
	require.False(t, revoked)
}
