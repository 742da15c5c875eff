// Package ledger stores reservation entries and answers queries about
// them.  The ledger is the single source of truth for what has been
// claimed.  It performs no business-rule enforcement; uniqueness by
// source, capacity limits and ownership checks are the engine's job,
// which keeps the ledger a dumb, testable store.
package ledger

import (
	"errors"
	"fmt"

	"github.com/okheya/food-rescue/internal/model"
)

// ErrDuplicateID indicates an insert whose reservation ID is already
// present.  Given the ID generation contract this should never happen;
// when seen it indicates a bug in ID generation and the operation must
// not be retried with the same ID.
var ErrDuplicateID = errors.New("duplicate reservation id")

// ErrReservationNotFound indicates that no reservation with the
// requested ID exists in the ledger.
var ErrReservationNotFound = errors.New("reservation not found")

// Ledger stores reservations in insertion order.  The zero value is
// not usable; call New.
type Ledger struct {
	order []string
	byID  map[string]model.Reservation
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{byID: make(map[string]model.Reservation)}
}

// Insert adds a reservation to the ledger.  It fails with
// ErrDuplicateID when the ID is already present; overwriting silently
// would mask an ID generator collision.
func (l *Ledger) Insert(r model.Reservation) error {
	if _, ok := l.byID[r.ID]; ok {
		return ErrDuplicateID
	}
	l.byID[r.ID] = r
	l.order = append(l.order, r.ID)
	return nil
}

// Remove deletes a reservation by ID and returns the removed entry.
// It fails with ErrReservationNotFound when the ID is absent, so a
// double remove surfaces as an error rather than silent success.
func (l *Ledger) Remove(id string) (model.Reservation, error) {
	r, ok := l.byID[id]
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	delete(l.byID, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return r, nil
}

// Get returns the reservation with the given ID or
// ErrReservationNotFound.
func (l *Ledger) Get(id string) (model.Reservation, error) {
	r, ok := l.byID[id]
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	return r, nil
}

// EntriesForUser returns all reservations owned by the given identity
// in insertion order.
func (l *Ledger) EntriesForUser(userID, userEmail string) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, id := range l.order {
		r := l.byID[id]
		if r.UserID == userID && r.UserEmail == userEmail {
			out = append(out, r)
		}
	}
	return out
}

// EntriesForListing returns all reservations referencing the given
// listing in insertion order.
func (l *Ledger) EntriesForListing(listingID string) []model.Reservation {
	out := make([]model.Reservation, 0)
	for _, id := range l.order {
		r := l.byID[id]
		if r.ListingID == listingID {
			out = append(out, r)
		}
	}
	return out
}

// CountForListing returns the number of active reservations for a
// listing.  The engine derives available counts from this.
func (l *Ledger) CountForListing(listingID string) int {
	n := 0
	for _, r := range l.byID {
		if r.ListingID == listingID {
			n++
		}
	}
	return n
}

// HasReservationFromSource reports whether the identity already holds a
// reservation whose denormalized source matches the given source.
func (l *Ledger) HasReservationFromSource(userID, userEmail, source string) bool {
	for _, r := range l.byID {
		if r.UserID == userID && r.UserEmail == userEmail && r.Source == source {
			return true
		}
	}
	return false
}

// All returns every reservation in insertion order.  The returned
// slice is a copy used as the snapshot handed to the persistence
// boundary.
func (l *Ledger) All() []model.Reservation {
	out := make([]model.Reservation, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.byID[id])
	}
	return out
}

// Len returns the number of active reservations.
func (l *Ledger) Len() int { return len(l.order) }

// Restore replays a previously saved snapshot into an empty ledger.
// It is used at startup when a durable store is configured.
func (l *Ledger) Restore(entries []model.Reservation) error {
	for _, r := range entries {
		if err := l.Insert(r); err != nil {
			return fmt.Errorf("restore reservation %s: %w", r.ID, err)
		}
	}
	return nil
}
