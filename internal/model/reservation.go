package model

import "time"

// Reservation records one user claiming one listing.  Entries are
// immutable after creation: a reservation is created by the engine's
// Reserve operation and destroyed by Cancel, never updated in place.
//
// Fields:
//  ID        – unique identifier generated at creation time.
//  UserID    – opaque identifier of the reserving user.
//  UserEmail – email of the reserving user; together with UserID it
//              establishes ownership of the entry.
//  ListingID – the listing being claimed; guaranteed to exist in the
//              catalog at creation time.
//  Source    – denormalized copy of the listing's source, captured at
//              creation so the one-per-source rule holds even if catalog
//              data later changes.
//  CreatedAt – creation timestamp, used for display and ordering only.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	ListingID string    `json:"listing_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
