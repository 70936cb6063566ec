package pkg

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessRoundTrip(t *testing.T) {
	SetAccessSecret("test-secret")

	token, err := GenerateAccess(42)
	require.NoError(t, err)

	claims, err := ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestParseAccess_Rejects(t *testing.T) {
	SetAccessSecret("test-secret")

	_, err := ParseAccess("not-a-token")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Subject:   accessSubject,
		},
	})
	s, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseAccess(s)
	assert.ErrorIs(t, err, ErrTokenExpired)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Subject: accessSubject},
	})
	s, err = other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = ParseAccess(s)
	assert.Error(t, err)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "refresh"},
	})
	s, err = refresh.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = ParseAccess(s)
	assert.Error(t, err)
}
