package sso

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pradikta/taskhub/internal"
)

// TokenVerifier validates bearer tokens signed with the shared SSO secret.
// Verification is CPU-only; it never touches the network.
type TokenVerifier struct {
	secret []byte
	method string
}

func NewTokenVerifier(cfg internal.SSOConfig) *TokenVerifier {
	cfg.ApplyDefaults()
	return &TokenVerifier{
		secret: []byte(SanitizeSecret(cfg.Secret)),
		method: cfg.Algorithm,
	}
}

// SanitizeSecret strips surrounding whitespace and quote characters from the
// configured secret. Deployment tooling occasionally injects the value quoted,
// and a quoted secret fails every signature check.
func SanitizeSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	secret = strings.Trim(secret, `"'`)
	return strings.TrimSpace(secret)
}

// Verify parses and validates a token, returning its full claim set.
// Failures map onto the three token-layer error kinds so the caller can pick a
// distinct response per kind.
func (v *TokenVerifier) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{v.method}))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		default:
			// wrong secret, tampered payload or disallowed signing method
			return nil, ErrInvalidSignature
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}
