package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload of the session cookie. Only the login
// travels in the token; the display name is re-fetched from the user
// directory on every request.
type SessionClaims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// TokenSigner issues and validates the signed session tokens carried
// by the browser cookie.
type TokenSigner struct {
	key      []byte
	duration time.Duration
}

func NewTokenSigner(secret string, duration time.Duration) *TokenSigner {
	return &TokenSigner{key: []byte(secret), duration: duration}
}

// Generate creates a signed session token for a login.
func (s *TokenSigner) Generate(login string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "parley",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate parses a token string and returns its claims when the
// signature and expiry check out.
func (s *TokenSigner) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
