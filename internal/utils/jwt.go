package utils // package utils provides helper functions for session tokens and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken represents a signed JWT session token along with its
// expiry.  The Token field contains the serialized JWT string.  Exp
// stores the UTC expiration time.  Session tokens are sent in the
// Authorization header when calling protected endpoints.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a user.  The JWT
// carries the claims the reservation engine's identity is built from:
// subject (sub, the user ID), email, display name, role, expiration
// (exp) and issued at (iat).  Both sub and email must round-trip
// intact; the engine rejects operations when either is missing.
func NewSessionToken(secret, userID, email, name, role string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"name":  name,
		"role":  role,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
