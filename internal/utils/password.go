package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a secret with the given cost.  Its only
// producer is the admin passcode resolution at startup; student logins
// carry no credential at all.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the bcrypt hash.  Used
// to gate ADMIN sessions on the configured passcode.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
