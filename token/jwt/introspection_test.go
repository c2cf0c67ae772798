package jwt_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	autherrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/token/jwt"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func signedToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func inspector() *jwt.Inspector {
	return jwt.NewInspector().WithNow(func() time.Time { return fixedNow })
}

func TestIntrospect_Active(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{
		"sub":                "user-1",
		"iss":                "http://localhost:8080/realms/app",
		"preferred_username": "johndoe",
		"iat":                fixedNow.Add(-time.Minute).Unix(),
		"exp":                fixedNow.Add(time.Hour).Unix(),
	})

	result, err := inspector().Introspect(raw)
	require.NoError(t, err)
	require.True(t, result.Active)
	require.Equal(t, "user-1", result.Sub)
	require.Equal(t, "johndoe", result.PreferredUsername)
	require.Equal(t, fixedNow.Add(time.Hour).Unix(), result.Exp.Unix())
	require.NotNil(t, result.Iat)
}

func TestIntrospect_Expired(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"exp": fixedNow.Add(-time.Second).Unix()})

	result, err := inspector().Introspect(raw)
	require.NoError(t, err)
	require.False(t, result.Active)
	require.False(t, inspector().Active(raw))
}

func TestIntrospect_Empty(t *testing.T) {
	result, err := inspector().Introspect("  ")
	require.NoError(t, err)
	require.False(t, result.Active)
}

func TestIntrospect_Malformed(t *testing.T) {
	for _, raw := range []string{"not-a-jwt", "a.b.c", "header.e30"} {
		result, err := inspector().Introspect(raw)
		require.Error(t, err, raw)
		require.False(t, result.Active)
		require.ErrorIs(t, err, autherrors.ErrMalformedToken)
		require.Equal(t, autherrors.KindProtocol, autherrors.KindOf(err))
		require.False(t, inspector().Active(raw))
	}
}

func TestIntrospect_NoExpiry(t *testing.T) {
	raw := signedToken(t, jwtlib.MapClaims{"sub": "user-1"})

	result, err := inspector().Introspect(raw)
	require.NoError(t, err)
	require.False(t, result.Active)
	require.Nil(t, result.Exp)
}

func TestIntrospect_DefaultClock(t *testing.T) {
	original := jwt.NowTimeFunc
	jwt.NowTimeFunc = func() time.Time { return fixedNow }
	t.Cleanup(func() { jwt.NowTimeFunc = original })

	raw := signedToken(t, jwtlib.MapClaims{"exp": fixedNow.Add(time.Minute).Unix()})
	require.True(t, jwt.NewInspector().Active(raw))
}
