package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/okheya/food-rescue/internal/catalog"
	"github.com/okheya/food-rescue/internal/ledger"
	"github.com/okheya/food-rescue/internal/model"
)

var (
	alice = model.Identity{UserID: "u-alice", UserEmail: "alice@scu.edu"}
	bob   = model.Identity{UserID: "u-bob", UserEmail: "bob@scu.edu"}
)

func newTestEngine(t *testing.T, listings ...model.Listing) *Engine {
	t.Helper()
	cat := catalog.New()
	for _, l := range listings {
		if err := cat.Add(l); err != nil {
			t.Fatalf("catalog add %s: %v", l.ID, err)
		}
	}
	return New(cat, ledger.New(), nil)
}

func listing(id, source string, capacity int) model.Listing {
	return model.Listing{ID: id, Title: "t-" + id, Source: source, Kind: model.KindCafe, TotalCapacity: capacity}
}

// checkInvariants asserts the consistency properties that must hold
// after every operation: the capacity bound and ledger/count
// agreement for every listing, and the one-per-source rule for every
// identity present in the ledger.
func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	for _, la := range e.Listings() {
		if la.Available < 0 || la.Available > la.Listing.TotalCapacity {
			t.Errorf("listing %s: available %d outside [0,%d]",
				la.Listing.ID, la.Available, la.Listing.TotalCapacity)
		}
		reserved := len(e.ReservationsForListing(la.Listing.ID))
		if la.Listing.TotalCapacity-la.Available != reserved {
			t.Errorf("listing %s: capacity %d - available %d != %d ledger entries",
				la.Listing.ID, la.Listing.TotalCapacity, la.Available, reserved)
		}
	}
	perSource := make(map[string]int)
	for _, la := range e.Listings() {
		for _, r := range e.ReservationsForListing(la.Listing.ID) {
			key := r.UserID + "|" + r.UserEmail + "|" + r.Source
			perSource[key]++
			if perSource[key] > 1 {
				t.Errorf("identity %s/%s holds more than one reservation from source %q",
					r.UserID, r.UserEmail, r.Source)
			}
		}
	}
}

func TestReserve(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 10))

	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if r.ID == "" {
		t.Error("reservation has no id")
	}
	if r.ListingID != "1" || r.Source != "Mission Bakery" {
		t.Errorf("reservation fields wrong: %+v", r)
	}
	if r.UserID != alice.UserID || r.UserEmail != alice.UserEmail {
		t.Errorf("reservation owner wrong: %+v", r)
	}
	if avail, _ := e.AvailableCount("1"); avail != 9 {
		t.Errorf("expected available 9, got %d", avail)
	}
	checkInvariants(t, e)
}

func TestReserve_ListingNotFound(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.Reserve(context.Background(), "missing", alice)
	if !errors.Is(err, catalog.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound, got %v", err)
	}
}

func TestReserve_Unauthenticated(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 1))
	cases := []model.Identity{
		{},
		{UserID: "u-alice"},
		{UserEmail: "alice@scu.edu"},
	}
	for _, id := range cases {
		if _, err := e.Reserve(context.Background(), "1", id); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("identity %+v: expected ErrUnauthenticated, got %v", id, err)
		}
	}
	if avail, _ := e.AvailableCount("1"); avail != 1 {
		t.Errorf("failed reserves must not consume capacity, available=%d", avail)
	}
}

// Precondition order: an incomplete identity on a sold-out listing is
// reported as unauthenticated, not sold out.
func TestReserve_PreconditionOrder(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 1))
	if _, err := e.Reserve(context.Background(), "1", alice); err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	_, err := e.Reserve(context.Background(), "1", model.Identity{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated before ErrSoldOut, got %v", err)
	}
}

func TestReserve_SoldOut(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 1))

	if _, err := e.Reserve(context.Background(), "1", alice); err != nil {
		t.Fatalf("first Reserve returned error: %v", err)
	}
	if avail, _ := e.AvailableCount("1"); avail != 0 {
		t.Fatalf("expected available 0, got %d", avail)
	}
	_, err := e.Reserve(context.Background(), "1", bob)
	if !errors.Is(err, ErrSoldOut) {
		t.Errorf("expected ErrSoldOut, got %v", err)
	}
	if avail, _ := e.AvailableCount("1"); avail != 0 {
		t.Errorf("failed reserve changed availability to %d", avail)
	}
	checkInvariants(t, e)
}

func TestReserve_DuplicateSource(t *testing.T) {
	// Two listings from the same bakery; one reservation per source
	// per user.
	e := newTestEngine(t,
		listing("x", "Mission Bakery", 5),
		listing("y", "Mission Bakery", 5),
	)
	if _, err := e.Reserve(context.Background(), "x", alice); err != nil {
		t.Fatalf("Reserve x returned error: %v", err)
	}
	_, err := e.Reserve(context.Background(), "y", alice)
	if !errors.Is(err, ErrDuplicateSource) {
		t.Errorf("expected ErrDuplicateSource, got %v", err)
	}
	// A different user may still reserve from the same source.
	if _, err := e.Reserve(context.Background(), "y", bob); err != nil {
		t.Errorf("bob reserving y returned error: %v", err)
	}
	checkInvariants(t, e)
}

func TestCancel_RoundTrip(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 5))

	before, _ := e.AvailableCount("1")
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if err := e.Cancel(context.Background(), r.ID, alice); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	after, _ := e.AvailableCount("1")
	if after != before {
		t.Errorf("round trip changed availability: before=%d after=%d", before, after)
	}
	if n := len(e.ReservationsFor(alice)); n != 0 {
		t.Errorf("expected no reservations after cancel, got %d", n)
	}
	checkInvariants(t, e)
}

func TestCancel_NotIdempotent(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 5))
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if err := e.Cancel(context.Background(), r.ID, alice); err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}
	err = e.Cancel(context.Background(), r.ID, alice)
	if !errors.Is(err, ledger.ErrReservationNotFound) {
		t.Errorf("second Cancel: expected ErrReservationNotFound, got %v", err)
	}
}

func TestCancel_OwnershipEnforced(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 5))
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}

	err = e.Cancel(context.Background(), r.ID, bob)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	// A partial identity match is still a mismatch.
	half := model.Identity{UserID: alice.UserID, UserEmail: "imposter@scu.edu"}
	if err := e.Cancel(context.Background(), r.ID, half); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("partial identity: expected ErrUnauthorized, got %v", err)
	}

	// The reservation must remain active.
	if n := len(e.ReservationsFor(alice)); n != 1 {
		t.Errorf("expected alice's reservation to survive, got %d entries", n)
	}
	if avail, _ := e.AvailableCount("1"); avail != 4 {
		t.Errorf("expected available 4, got %d", avail)
	}
	checkInvariants(t, e)
}

func TestCancel_RestoresCapacity(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 5))
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if avail, _ := e.AvailableCount("1"); avail != 4 {
		t.Fatalf("expected available 4, got %d", avail)
	}
	if err := e.Cancel(context.Background(), r.ID, alice); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if avail, _ := e.AvailableCount("1"); avail != 5 {
		t.Errorf("expected available 5, got %d", avail)
	}
}

// failingStore rejects every save, simulating an unreachable database.
type failingStore struct {
	saves int
}

func (f *failingStore) SaveLedger(ctx context.Context, entries []model.Reservation) error {
	f.saves++
	return errors.New("database gone")
}

func (f *failingStore) SaveListing(ctx context.Context, l model.Listing) error {
	return errors.New("database gone")
}

func TestReserve_PersistenceFailureRollsBack(t *testing.T) {
	cat := catalog.New()
	if err := cat.Add(listing("1", "Mission Bakery", 5)); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	led := ledger.New()
	fs := &failingStore{}
	e := New(cat, led, fs)

	_, err := e.Reserve(context.Background(), "1", alice)
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if fs.saves != 1 {
		t.Errorf("expected exactly one save attempt, got %d", fs.saves)
	}
	if led.Len() != 0 {
		t.Errorf("ledger mutated despite failed save, len=%d", led.Len())
	}
	if avail, _ := e.AvailableCount("1"); avail != 5 {
		t.Errorf("availability changed despite failed save: %d", avail)
	}
}

func TestCancel_PersistenceFailureRollsBack(t *testing.T) {
	cat := catalog.New()
	if err := cat.Add(listing("1", "Mission Bakery", 5)); err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	led := ledger.New()
	e := New(cat, led, nil)
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}

	// Swap in a store that fails from now on.
	e.store = &failingStore{}
	if err := e.Cancel(context.Background(), r.ID, alice); err == nil {
		t.Fatal("expected error when persistence fails")
	}
	// The entry must still be active and availability unchanged.
	if n := len(e.ReservationsFor(alice)); n != 1 {
		t.Errorf("expected reservation to survive failed cancel, got %d entries", n)
	}
	if avail, _ := e.AvailableCount("1"); avail != 4 {
		t.Errorf("expected available 4 after failed cancel, got %d", avail)
	}
}

func TestAddListing_PersistenceFailureRollsBack(t *testing.T) {
	cat := catalog.New()
	led := ledger.New()
	e := New(cat, led, &failingStore{})

	err := e.AddListing(context.Background(), listing("p1", "Career Night", 3))
	if err == nil {
		t.Fatal("expected error when persistence fails")
	}
	if _, err := e.Listing("p1"); !errors.Is(err, catalog.ErrListingNotFound) {
		t.Errorf("listing committed to catalog despite failed save: %v", err)
	}
	if cat.Len() != 0 {
		t.Errorf("catalog mutated despite failed save, len=%d", cat.Len())
	}
	// The ID is reusable once the store recovers.
	e.store = nil
	if err := e.AddListing(context.Background(), listing("p1", "Career Night", 3)); err != nil {
		t.Errorf("re-add after rollback returned error: %v", err)
	}
}

func TestReservationsFor_InsertionOrder(t *testing.T) {
	e := newTestEngine(t,
		listing("1", "Mission Bakery", 5),
		listing("2", "The Slice", 5),
		listing("3", "Cadence", 5),
	)
	for _, id := range []string{"1", "2", "3"} {
		if _, err := e.Reserve(context.Background(), id, alice); err != nil {
			t.Fatalf("Reserve %s returned error: %v", id, err)
		}
	}
	got := e.ReservationsFor(alice)
	if len(got) != 3 {
		t.Fatalf("expected 3 reservations, got %d", len(got))
	}
	for i, want := range []string{"1", "2", "3"} {
		if got[i].ListingID != want {
			t.Errorf("position %d: expected listing %s, got %s", i, want, got[i].ListingID)
		}
	}
	checkInvariants(t, e)
}

func TestAddListing(t *testing.T) {
	e := newTestEngine(t)
	l := listing("new", "Career Night", 3)
	if err := e.AddListing(context.Background(), l); err != nil {
		t.Fatalf("AddListing returned error: %v", err)
	}
	if avail, err := e.AvailableCount("new"); err != nil || avail != 3 {
		t.Errorf("expected available 3, got %d (err=%v)", avail, err)
	}
	if err := e.AddListing(context.Background(), l); !errors.Is(err, catalog.ErrListingExists) {
		t.Errorf("expected ErrListingExists, got %v", err)
	}
}

func TestReservationForOwner(t *testing.T) {
	e := newTestEngine(t, listing("1", "Mission Bakery", 5))
	r, err := e.Reserve(context.Background(), "1", alice)
	if err != nil {
		t.Fatalf("Reserve returned error: %v", err)
	}
	if _, err := e.ReservationForOwner(r.ID, alice); err != nil {
		t.Errorf("owner lookup returned error: %v", err)
	}
	if _, err := e.ReservationForOwner(r.ID, bob); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := e.ReservationForOwner("missing", alice); !errors.Is(err, ledger.ErrReservationNotFound) {
		t.Errorf("expected ErrReservationNotFound, got %v", err)
	}
}
