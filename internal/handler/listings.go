// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines handlers for the public browse API.
// These routes let anyone see what food is currently up for grabs
// without signing in; the derived available count is included so the
// client never has to track availability itself.
package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/engine"
	"github.com/okheya/food-rescue/internal/model"
)

// ListingHandler serves the public catalog views backed by the
// consistency engine's read queries.
type ListingHandler struct {
	Engine *engine.Engine
}

// NewListingHandler constructs a ListingHandler.  The engine must be
// non-nil.
func NewListingHandler(eng *engine.Engine) *ListingHandler {
	if eng == nil {
		panic("nil engine passed to NewListingHandler")
	}
	return &ListingHandler{Engine: eng}
}

// listingView is the public JSON shape of a listing plus its derived
// availability.
type listingView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	PickupWindow  string `json:"pickup_window"`
	Source        string `json:"source"`
	Kind          string `json:"kind"`
	TotalCapacity int    `json:"total_capacity"`
	Available     int    `json:"available_count"`
}

func toListingView(la engine.ListingAvailability) listingView {
	return listingView{
		ID:            la.Listing.ID,
		Title:         la.Listing.Title,
		Description:   la.Listing.Description,
		Location:      la.Listing.Location,
		PickupWindow:  la.Listing.PickupWindow,
		Source:        la.Listing.Source,
		Kind:          la.Listing.Kind,
		TotalCapacity: la.Listing.TotalCapacity,
		Available:     la.Available,
	}
}

// GetListings handles GET /v1/listings.  It returns every listing in
// catalog order with its available count.  The optional ?kind=cafe or
// ?kind=event query parameter filters by listing kind.
func (h *ListingHandler) GetListings(c echo.Context) error {
	kind := strings.ToLower(strings.TrimSpace(c.QueryParam("kind")))
	if kind != "" && kind != model.KindCafe && kind != model.KindEvent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid kind"})
	}
	all := h.Engine.Listings()
	out := make([]listingView, 0, len(all))
	for _, la := range all {
		if kind != "" && la.Listing.Kind != kind {
			continue
		}
		out = append(out, toListingView(la))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetListing handles GET /v1/listings/:id.  It returns one listing
// with its available count, or 404 when the ID is unknown.
func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")
	la, err := h.Engine.Listing(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toListingView(la)})
}
