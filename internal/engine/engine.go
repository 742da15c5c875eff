package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okheya/food-rescue/internal/catalog"
	"github.com/okheya/food-rescue/internal/ledger"
	"github.com/okheya/food-rescue/internal/model"
)

// Store is the optional persistence boundary.  When configured, the
// engine calls it as a synchronous tail step of every mutation; state
// is not considered committed until the save succeeds, and the
// in-memory change is rolled back when it fails.  Implementations must
// replace the durable ledger with the given snapshot.
type Store interface {
	// SaveLedger persists the full ledger snapshot.
	SaveLedger(ctx context.Context, entries []model.Reservation) error
	// SaveListing persists a newly created listing.
	SaveListing(ctx context.Context, l model.Listing) error
}

// ListingAvailability pairs a listing with its derived available
// count for presentation-layer reads.
type ListingAvailability struct {
	Listing   model.Listing `json:"listing"`
	Available int           `json:"available_count"`
}

// Engine keeps the catalog and the ledger mutually consistent.  It is
// the single writer for both; the mutex serializes operations because
// the HTTP layer calls in from concurrent goroutines even though the
// model is logically single-threaded.  All precondition checks happen
// before any write, so no operation is ever partially applied.
type Engine struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	store   Store

	now   func() time.Time
	newID func() string
}

// New constructs an engine over the given catalog and ledger.  The
// store may be nil for a memory-only session.  Catalog and ledger must
// not be shared with another writer.
func New(cat *catalog.Catalog, led *ledger.Ledger, store Store) *Engine {
	if cat == nil || led == nil {
		panic("nil catalog or ledger passed to engine.New")
	}
	return &Engine{
		catalog: cat,
		ledger:  led,
		store:   store,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Reserve claims one portion of a listing for the given identity.
// Preconditions are checked in a fixed order and the first failing one
// wins: listing existence, identity completeness, availability, then
// the one-per-source rule.  On success exactly one ledger entry is
// created and the listing's derived available count drops by one on
// the next read.
func (e *Engine) Reserve(ctx context.Context, listingID string, id model.Identity) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.catalog.Get(listingID)
	if err != nil {
		return model.Reservation{}, err
	}
	if !id.Complete() {
		return model.Reservation{}, ErrUnauthenticated
	}
	if l.TotalCapacity-e.ledger.CountForListing(l.ID) <= 0 {
		return model.Reservation{}, ErrSoldOut
	}
	if e.ledger.HasReservationFromSource(id.UserID, id.UserEmail, l.Source) {
		return model.Reservation{}, ErrDuplicateSource
	}

	r := model.Reservation{
		ID:        e.newID(),
		UserID:    id.UserID,
		UserEmail: id.UserEmail,
		ListingID: l.ID,
		Source:    l.Source,
		CreatedAt: e.now().UTC(),
	}
	if err := e.ledger.Insert(r); err != nil {
		// ID generator collision; surfaced, never retried with the same ID.
		return model.Reservation{}, err
	}
	if e.store != nil {
		if err := e.store.SaveLedger(ctx, e.ledger.All()); err != nil {
			_, _ = e.ledger.Remove(r.ID)
			return model.Reservation{}, fmt.Errorf("persist ledger: %w", err)
		}
	}
	return r, nil
}

// Cancel removes a reservation owned by the given identity.  Cancel is
// not idempotent: cancelling an already-cancelled ID fails with
// ledger.ErrReservationNotFound, which callers should treat as
// "already cancelled".  The listing's derived available count rises by
// one on the next read.
func (e *Engine) Cancel(ctx context.Context, reservationID string, id model.Identity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.ledger.Get(reservationID)
	if err != nil {
		return err
	}
	if !id.Owns(r) {
		return ErrUnauthorized
	}
	removed, err := e.ledger.Remove(reservationID)
	if err != nil {
		return err
	}
	if e.store != nil {
		if err := e.store.SaveLedger(ctx, e.ledger.All()); err != nil {
			_ = e.ledger.Insert(removed)
			return fmt.Errorf("persist ledger: %w", err)
		}
	}
	return nil
}

// AddListing inserts a new listing into the catalog and, when a store
// is configured, persists it.  Admin create goes through the engine so
// the catalog keeps a single writer.  A failed save undoes the catalog
// insert, same as Reserve and Cancel: otherwise the listing would take
// reservations during the session and vanish on restart, leaving the
// restored ledger with dangling listing IDs.
func (e *Engine) AddListing(ctx context.Context, l model.Listing) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.catalog.Add(l); err != nil {
		return err
	}
	if e.store != nil {
		if err := e.store.SaveListing(ctx, l); err != nil {
			_ = e.catalog.Remove(l.ID)
			return fmt.Errorf("persist listing: %w", err)
		}
	}
	return nil
}

// AvailableCount returns the listing's derived availability:
// TotalCapacity minus the live count of ledger entries.  It is never
// negative and never exceeds TotalCapacity.
func (e *Engine) AvailableCount(listingID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.availableLocked(listingID)
}

func (e *Engine) availableLocked(listingID string) (int, error) {
	l, err := e.catalog.Get(listingID)
	if err != nil {
		return 0, err
	}
	return l.TotalCapacity - e.ledger.CountForListing(l.ID), nil
}

// Listing returns one listing with its derived availability.
func (e *Engine) Listing(listingID string) (ListingAvailability, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, err := e.catalog.Get(listingID)
	if err != nil {
		return ListingAvailability{}, err
	}
	return ListingAvailability{
		Listing:   l,
		Available: l.TotalCapacity - e.ledger.CountForListing(l.ID),
	}, nil
}

// Listings returns every listing with its derived availability in
// catalog insertion order.
func (e *Engine) Listings() []ListingAvailability {
	e.mu.Lock()
	defer e.mu.Unlock()

	all := e.catalog.All()
	out := make([]ListingAvailability, 0, len(all))
	for _, l := range all {
		out = append(out, ListingAvailability{
			Listing:   l,
			Available: l.TotalCapacity - e.ledger.CountForListing(l.ID),
		})
	}
	return out
}

// ReservationsFor returns the identity's active reservations in
// insertion order.
func (e *Engine) ReservationsFor(id model.Identity) []model.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.EntriesForUser(id.UserID, id.UserEmail)
}

// ReservationForOwner returns the reservation with the given ID when
// it is owned by the identity.  Errors mirror Cancel's precondition
// order: ledger.ErrReservationNotFound first, then ErrUnauthorized.
func (e *Engine) ReservationForOwner(reservationID string, id model.Identity) (model.Reservation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, err := e.ledger.Get(reservationID)
	if err != nil {
		return model.Reservation{}, err
	}
	if !id.Owns(r) {
		return model.Reservation{}, ErrUnauthorized
	}
	return r, nil
}

// ReservationsForListing returns the active reservations referencing a
// listing, used by the admin view.
func (e *Engine) ReservationsForListing(listingID string) []model.Reservation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.EntriesForListing(listingID)
}
