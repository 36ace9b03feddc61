package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParser_RoundTrip(t *testing.T) {
	parser := NewParser("test-secret")
	profileID := uuid.New()

	token, err := parser.Sign(profileID, time.Hour)
	require.NoError(t, err)

	got, err := parser.Parse(token)
	require.NoError(t, err)
	require.Equal(t, profileID, got)
}

func TestParser_WrongSecret(t *testing.T) {
	token, err := NewParser("secret-a").Sign(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = NewParser("secret-b").Parse(token)
	require.Error(t, err)
}

func TestParser_Expired(t *testing.T) {
	parser := NewParser("test-secret")
	token, err := parser.Sign(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = parser.Parse(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParser_BadProfileIDClaim(t *testing.T) {
	secret := "test-secret"
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		ProfileID: "not-a-uuid",
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewParser(secret).Parse(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParser_RejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ProfileID: uuid.New().String()})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewParser("test-secret").Parse(signed)
	require.Error(t, err)
}

func TestParser_Garbage(t *testing.T) {
	_, err := NewParser("test-secret").Parse("definitely.not.a-token")
	require.Error(t, err)
}
