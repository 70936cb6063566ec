package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenParseFailure = errors.New("token parse failure")
	ErrSecretNotSet      = errors.New("access secret not set")
)

const (
	AccessTTL     = time.Minute * 30
	accessSubject = "access"
)

// accessSecret is shared with the identity service that issues the tokens.
var accessSecret []byte

// SetAccessSecret is called once at startup from config.
func SetAccessSecret(secret string) {
	accessSecret = []byte(secret)
}

type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateAccess issues an access token the same way the identity service does.
// Used by the seed tool and tests.
func GenerateAccess(userID uint64) (string, error) {
	if len(accessSecret) == 0 {
		return "", ErrSecretNotSet
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTTL)),
			Subject:   accessSubject,
		},
	})
	return token.SignedString(accessSecret)
}

// ParseAccess validates an access token and returns its claims.
func ParseAccess(tokenStr string) (*Claims, error) {
	if len(accessSecret) == 0 {
		return nil, ErrSecretNotSet
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithSubject(accessSubject))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			return nil, err
		}
	}
	claims, ok := token.Claims.(*Claims)
	if !token.Valid || !ok || claims.UserID == 0 {
		return nil, ErrTokenParseFailure
	}
	return claims, nil
}
