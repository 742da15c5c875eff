package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/catalog"
	"github.com/okheya/food-rescue/internal/engine"
	"github.com/okheya/food-rescue/internal/model"
)

// AdminHandler serves the listing-management endpoints used by cafe
// and event staff.  Routes mounted with this handler must sit behind
// RequireRole(RoleAdmin).
type AdminHandler struct {
	Engine *engine.Engine
}

// NewAdminHandler constructs an AdminHandler.  The engine must be
// non-nil.
func NewAdminHandler(eng *engine.Engine) *AdminHandler {
	if eng == nil {
		panic("nil engine passed to NewAdminHandler")
	}
	return &AdminHandler{Engine: eng}
}

type createListingReq struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	PickupWindow string `json:"pickup_window"`
	Source       string `json:"source"`
	Kind         string `json:"kind"`
	Capacity     int    `json:"total_capacity"`
}

// CreateListing handles POST /v1/admin/listings.  It validates the
// request, assigns a fresh listing ID and adds the listing through the
// engine so the catalog keeps a single writer.  Returns 201 with the
// created listing.
func (h *AdminHandler) CreateListing(c echo.Context) error {
	var req createListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Source = strings.TrimSpace(req.Source)
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if req.Title == "" || req.Source == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and source are required"})
	}
	if kind != model.KindCafe && kind != model.KindEvent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be cafe or event"})
	}
	if req.Capacity < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_capacity must be >= 0"})
	}

	l := model.Listing{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   strings.TrimSpace(req.Description),
		Location:      strings.TrimSpace(req.Location),
		PickupWindow:  strings.TrimSpace(req.PickupWindow),
		Source:        req.Source,
		Kind:          kind,
		TotalCapacity: req.Capacity,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Engine.AddListing(c.Request().Context(), l); err != nil {
		if errors.Is(err, catalog.ErrListingExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "listing already exists"})
		}
		if errors.Is(err, catalog.ErrInvalidListing) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create listing failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": l})
}

// adminListingView extends the public listing view with the active
// reservations, so staff can see who claimed what.
type adminListingView struct {
	listingView
	Reservations []model.Reservation `json:"reservations"`
}

// GetListings handles GET /v1/admin/listings.  It returns every
// listing with its availability and the reservations currently held
// against it.
func (h *AdminHandler) GetListings(c echo.Context) error {
	all := h.Engine.Listings()
	out := make([]adminListingView, 0, len(all))
	for _, la := range all {
		out = append(out, adminListingView{
			listingView:  toListingView(la),
			Reservations: h.Engine.ReservationsForListing(la.Listing.ID),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}
