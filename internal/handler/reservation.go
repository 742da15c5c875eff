package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/catalog"
	"github.com/okheya/food-rescue/internal/engine"
	"github.com/okheya/food-rescue/internal/ledger"
	"github.com/okheya/food-rescue/internal/model"
	"github.com/okheya/food-rescue/internal/queue"
	queue_publisher "github.com/okheya/food-rescue/internal/service"
)

// ReservationHandler serves the student-facing reserve/cancel/list
// endpoints.  All methods assume JWT authentication and role
// validation already happened in middleware.  The handler owns the
// request-level in-flight guard; the engine owns atomicity of the
// actual state change.
type ReservationHandler struct {
	Engine  *engine.Engine
	guard   *inflightGuard
	Publish func(ctx context.Context, ev queue.ReservationEvent) error
}

// NewReservationHandler constructs a ReservationHandler wired to the
// RabbitMQ publisher.  The engine must be non-nil.
func NewReservationHandler(eng *engine.Engine) *ReservationHandler {
	if eng == nil {
		panic("nil engine passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Engine:  eng,
		guard:   newInflightGuard(),
		Publish: queue_publisher.PublishReservationEvent,
	}
}

// reservationView is the JSON shape of a reservation joined with the
// listing details the client renders on the "Your Reservations" page.
type reservationView struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listing_id"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	Location     string    `json:"location"`
	PickupWindow string    `json:"pickup_window"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *ReservationHandler) toReservationView(r model.Reservation) reservationView {
	v := reservationView{
		ID:        r.ID,
		ListingID: r.ListingID,
		Source:    r.Source,
		CreatedAt: r.CreatedAt,
	}
	// Listings are never deleted during a session, so the lookup only
	// fails for reservations restored from an older catalog; those
	// still render with their denormalized source.
	if la, err := h.Engine.Listing(r.ListingID); err == nil {
		v.Title = la.Listing.Title
		v.Location = la.Listing.Location
		v.PickupWindow = la.Listing.PickupWindow
	}
	return v
}

// Reserve handles POST /v1/listings/:id/reservations.  It claims one
// portion of the listing for the authenticated user and returns 201
// with the reservation and the listing's new available count.
// Business failures are reported with distinct messages: 404 for an
// unknown listing, 409 for sold out or a duplicate source, and 409
// when the same listing already has a request in flight.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	listingID := c.Param("id")
	if listingID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	if !h.guard.begin("listing:" + listingID + ":" + id.UserID) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "operation already in progress"})
	}
	defer h.guard.end("listing:" + listingID + ":" + id.UserID)

	ctx := c.Request().Context()
	res, err := h.Engine.Reserve(ctx, listingID, id)
	if err != nil {
		return h.reserveError(c, err)
	}

	available, _ := h.Engine.AvailableCount(res.ListingID)
	h.publishEvent(res, queue.EventConfirmed, available)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation":     h.toReservationView(res),
		"available_count": available,
	})
}

func (h *ReservationHandler) reserveError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrListingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	case errors.Is(err, engine.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, engine.ErrSoldOut):
		return c.JSON(http.StatusConflict, echo.Map{"error": "sold out"})
	case errors.Is(err, engine.ErrDuplicateSource):
		return c.JSON(http.StatusConflict, echo.Map{"error": "you already have a reservation from this location"})
	case errors.Is(err, ledger.ErrDuplicateID):
		// ID generator collision; must not be retried with the same ID.
		log.Printf("reserve: duplicate reservation id: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}
}

// Cancel handles DELETE /v1/reservations/:id.  It removes a
// reservation owned by the authenticated user and returns 204.  A
// second cancel of the same ID returns 404; callers should read that
// as "already cancelled".  Cancelling someone else's reservation
// returns 403 and is logged, since it indicates a bug or tampering.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID := c.Param("id")
	if resID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if !h.guard.begin("reservation:" + resID) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "operation already in progress"})
	}
	defer h.guard.end("reservation:" + resID)

	ctx := c.Request().Context()
	// Snapshot the entry before cancelling so the event can carry the
	// listing details after the ledger entry is gone.
	prior, priorErr := h.Engine.ReservationForOwner(resID, id)

	if err := h.Engine.Cancel(ctx, resID, id); err != nil {
		switch {
		case errors.Is(err, ledger.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, engine.ErrUnauthorized):
			log.Printf("cancel: ownership violation: user=%s reservation=%s", id.UserID, resID)
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}

	if priorErr == nil {
		available, _ := h.Engine.AvailableCount(prior.ListingID)
		h.publishEvent(prior, queue.EventCancelled, available)
	}
	return c.NoContent(http.StatusNoContent)
}

// MyReservations handles GET /v1/my-reservations.  It returns the
// authenticated user's active reservations in the order they were
// made, joined with listing details for display.  No reservations
// yields an empty array.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	entries := h.Engine.ReservationsFor(id)
	out := make([]reservationView, 0, len(entries))
	for _, r := range entries {
		out = append(out, h.toReservationView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// publishEvent fires a reservation event in the background.  Publish
// failures are the publisher's problem to log; the reservation itself
// has already committed.
func (h *ReservationHandler) publishEvent(r model.Reservation, typ string, available int) {
	if h.Publish == nil {
		return
	}
	ev := queue.ReservationEvent{
		Type:          typ,
		ReservationID: r.ID,
		UserID:        r.UserID,
		UserEmail:     r.UserEmail,
		ListingID:     r.ListingID,
		Source:        r.Source,
		AvailableLeft: available,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if la, err := h.Engine.Listing(r.ListingID); err == nil {
		ev.ListingTitle = la.Listing.Title
		ev.Location = la.Listing.Location
		ev.PickupWindow = la.Listing.PickupWindow
	}
	go func() { _ = h.Publish(context.Background(), ev) }()
}
