// Package catalog holds the set of reservable food listings for a
// session.  The catalog is a leaf component: it never reads or writes
// the reservation ledger.  Availability is a join between the catalog
// and the ledger and is computed by the engine, not stored here.
package catalog

import (
	"errors"

	"github.com/okheya/food-rescue/internal/model"
)

// ErrListingNotFound indicates that no listing with the requested ID
// exists in the catalog.
var ErrListingNotFound = errors.New("listing not found")

// ErrListingExists indicates an attempt to add a listing whose ID is
// already present.
var ErrListingExists = errors.New("listing already exists")

// ErrInvalidListing indicates a listing that fails basic validation,
// such as a negative capacity or a missing ID or source.
var ErrInvalidListing = errors.New("invalid listing")

// Catalog stores listings in insertion order.  Listings are added at
// session load and by admin create; they are never removed during a
// session.  The zero value is not usable; call New.
type Catalog struct {
	order []string
	byID  map[string]model.Listing
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{byID: make(map[string]model.Listing)}
}

// Add inserts a listing into the catalog.  It returns ErrInvalidListing
// when the listing has no ID, no source, or a negative capacity, and
// ErrListingExists when the ID is already taken.
func (c *Catalog) Add(l model.Listing) error {
	if l.ID == "" || l.Source == "" || l.TotalCapacity < 0 {
		return ErrInvalidListing
	}
	if _, ok := c.byID[l.ID]; ok {
		return ErrListingExists
	}
	c.byID[l.ID] = l
	c.order = append(c.order, l.ID)
	return nil
}

// Remove deletes a listing by ID or returns ErrListingNotFound.  It
// exists so the engine can undo an Add whose persistence save failed;
// listings are never removed during normal operation.
func (c *Catalog) Remove(id string) error {
	if _, ok := c.byID[id]; !ok {
		return ErrListingNotFound
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the listing with the given ID or ErrListingNotFound.
func (c *Catalog) Get(id string) (model.Listing, error) {
	l, ok := c.byID[id]
	if !ok {
		return model.Listing{}, ErrListingNotFound
	}
	return l, nil
}

// All returns every listing in insertion order.  The returned slice is
// a copy; callers may not mutate catalog state through it.
func (c *Catalog) All() []model.Listing {
	out := make([]model.Listing, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of listings in the catalog.
func (c *Catalog) Len() int { return len(c.order) }
