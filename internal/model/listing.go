package model

import "time"

// Listing kinds.  A listing either comes from a campus cafe with a
// recurring surplus window or from a one-off event with leftovers.
const (
	KindCafe  = "cafe"
	KindEvent = "event"
)

// Listing represents a reservable surplus-food posting in the catalog.
// TotalCapacity is fixed at creation; the number of portions still
// available is never stored on the listing itself, it is derived from
// the reservation ledger so the two can never drift apart.
//
// Fields:
//  ID            – unique identifier, stable for the listing's lifetime.
//  Title         – short description of the food (e.g. "Assorted Pastries").
//  Description   – longer free-form description.
//  Location      – where to pick the food up.
//  PickupWindow  – human-readable pickup time range (e.g. "2:00 PM - 4:00 PM").
//  Source        – provider name (cafe or event); the uniqueness scope for
//                  the one-reservation-per-source rule.
//  Kind          – KindCafe or KindEvent.
//  TotalCapacity – number of portions posted, fixed at creation, >= 0.
//  CreatedAt     – creation timestamp.
type Listing struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PickupWindow  string    `json:"pickup_window"`
	Source        string    `json:"source"`
	Kind          string    `json:"kind"`
	TotalCapacity int       `json:"total_capacity"`
	CreatedAt     time.Time `json:"created_at"`
}
