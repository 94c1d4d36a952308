// Package auth signs and verifies the console session token. The token only
// names a workspace; users authenticate against the HRM backend itself.
package auth

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "hrmconsole"

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// NewSessionID returns a fresh random workspace id.
func NewSessionID() string {
	return uuid.NewString()
}

func GenerateToken(secret, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
