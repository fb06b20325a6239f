// Package auth provides the credential primitives shared by the user
// service and the HTTP middleware: bcrypt password hashing, signed identity
// tokens, and the request-scoped Identity type.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token. Tokens are stateless;
// expiry is the only invalidation mechanism.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by ParseToken for every verification failure.
// The specific cause (bad signature, expired, malformed) is deliberately
// collapsed so callers cannot leak it to clients.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified result of a token, attached to a request for the
// duration of its handling. Role is the value embedded at issuance time; a
// role change takes effect when the token expires.
type Identity struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewToken builds and signs an HS256 JWT asserting the given identity.
// Claims are the subject id, email, role, issued-at, and a fixed seven-day
// expiry.
func NewToken(secret string, id Identity) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   id.ID,
		"email": id.Email,
		"role":  id.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken verifies signature and expiry of a raw token string and
// returns the identity it asserts. Any failure, including malformed input,
// maps to ErrInvalidToken.
func ParseToken(secret, raw string) (Identity, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but HMAC; "alg":"none" and
		// asymmetric confusion attacks both fail here.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return Identity{ID: uint64(sub), Email: email, Role: role}, nil
}
