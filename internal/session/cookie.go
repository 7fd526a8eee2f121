package session

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs session ids into cookie values and verifies them back.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Encode(sessionID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ID: sessionID})
	return token.SignedString(c.secret)
}

func (c *Codec) Decode(value string) (string, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return "", ErrInvalidCookie
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidCookie
	}
	if strings.TrimSpace(claims.ID) == "" {
		return "", ErrInvalidCookie
	}
	return claims.ID, nil
}
