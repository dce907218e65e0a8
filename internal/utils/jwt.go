package utils // package utils provides helpers for token handling and hashing

import (
	"time" // expiry computation

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// TokenClaims carries the identity encoded in a bearer token.  The three
// fields mirror what every protected handler needs to authorize a request:
// who the caller is, their email for display, and their role for gating.
type TokenClaims struct {
	UserID uint64 // subject user id
	Email  string // account email at issue time
	Role   string // "user" or "admin"
}

// IssueToken builds and signs an HS256 JWT for a user.  Tokens are valid for
// ttlDays from now; there is no revocation list, so a token stays usable for
// its full lifetime even after a password change.
func IssueToken(secret string, userID uint64, email, role string, ttlDays int) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     now.Add(time.Duration(ttlDays) * 24 * time.Hour).Unix(),
		"iat":     now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// VerifyToken parses and validates a bearer token.  It returns the decoded
// claims and true only when the signature checks out and the token has not
// expired.  Malformed, expired and forged tokens are indistinguishable to
// the caller: all yield (zero, false).
func VerifyToken(secret, raw string) (TokenClaims, bool) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, false
	}
	out := TokenClaims{}
	switch v := claims["user_id"].(type) {
	case float64:
		out.UserID = uint64(v)
	default:
		return TokenClaims{}, false
	}
	if s, ok := claims["email"].(string); ok {
		out.Email = s
	}
	if s, ok := claims["role"].(string); ok {
		out.Role = s
	}
	return out, true
}

// IsAdmin reports whether the claims belong to an admin account.
func (c TokenClaims) IsAdmin() bool { return c.Role == "admin" }
