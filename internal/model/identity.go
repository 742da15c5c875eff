package model

// Identity carries the authenticated user information supplied by the
// session boundary.  Both fields must be populated for reservation
// operations; the engine rejects incomplete identities.
type Identity struct {
	UserID    string
	UserEmail string
}

// Complete reports whether both identity fields are populated.
func (i Identity) Complete() bool {
	return i.UserID != "" && i.UserEmail != ""
}

// Owns reports whether this identity owns the given reservation.  Both
// the user ID and the email must match exactly.
func (i Identity) Owns(r Reservation) bool {
	return i.UserID == r.UserID && i.UserEmail == r.UserEmail
}
