package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// UserIDFromEmail derives a stable, opaque user identifier from an
// email address.  The same email always yields the same ID, so a
// returning user keeps ownership of reservations made in earlier
// sessions.  The raw email never appears in the ID.
func UserIDFromEmail(email string) string {
	norm := strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(norm))
	return "u-" + hex.EncodeToString(sum[:6])
}

// NormalizeEmail lower-cases and trims an email address so identity
// comparisons are not case-sensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
