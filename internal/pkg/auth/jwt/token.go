/*
Package jwt issues and validates bearer tokens for the admin HTTP+WebSocket
surface. The chat wire protocol itself has no notion of accounts or tokens —
usernames are just client-chosen strings — so this package exists purely to
gate the operator-facing surface (stats, announcements, the dashboard feed)
behind a shared secret.
*/
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AdminTokenExpiration bounds how long an issued admin token remains valid.
const AdminTokenExpiration = 24 * time.Hour

// TokenIssuer identifies the issuer of every token this package mints.
const TokenIssuer = "chat-admin"

// AdminClaims is the JWT claim set for the admin surface. It carries no
// per-user identity: possession of a validly signed token is the only
// authorization check.
type AdminClaims struct {
	jwt.StandardClaims `json:"standard_claims"`
}

// GenerateAdminToken signs a fresh admin token with secretKey, valid for
// AdminTokenExpiration.
func GenerateAdminToken(secretKey string) (string, error) {
	now := time.Now()

	claims := AdminClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(AdminTokenExpiration).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    TokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ParseAdminToken validates tokenString against secretKey and returns its
// claims if it is well-formed, correctly signed, and unexpired.
func ParseAdminToken(tokenString, secretKey string) (*AdminClaims, error) {
	claims := &AdminClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid or expired admin token")
	}

	return claims, nil
}
