// Package queue defines message payloads exchanged over the message broker.
package queue

// Reservation event types carried in ReservationEvent.Type.
const (
	EventConfirmed = "confirmed"
	EventCancelled = "cancelled"
)

// ReservationEvent is published after a reserve or cancel commits.
// It contains enough information for downstream consumers to log,
// notify, or feed analytics without querying the service.  The
// AvailableLeft field carries the listing's derived availability as of
// the commit.
type ReservationEvent struct {
	Type          string `json:"type"` // "confirmed" or "cancelled"
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	UserEmail     string `json:"user_email"`
	ListingID     string `json:"listing_id"`
	ListingTitle  string `json:"listing_title"`
	Source        string `json:"source"`
	Location      string `json:"location"`
	PickupWindow  string `json:"pickup_window"`
	AvailableLeft int    `json:"available_left"`
	OccurredAt    string `json:"occurred_at"`
}
