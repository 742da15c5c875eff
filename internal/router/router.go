package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/okheya/food-rescue/internal/handler"    // handlers implementing the endpoints
	"github.com/okheya/food-rescue/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication
// on the provided Echo instance.  Currently it exposes only a health
// check, used by load balancers and monitoring to verify the service
// is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints.
// Guests can see what food is available before signing in, so these
// routes carry no JWT or role middleware.
func RegisterPublic(e *echo.Echo, l *handler.ListingHandler) {
	// All listings with derived availability; ?kind=cafe|event filters.
	e.GET("/v1/listings", l.GetListings)
	// A single listing with derived availability.
	e.GET("/v1/listings/:id", l.GetListing)
}

// RegisterSession registers the session boundary.  POST /v1/session
// issues a token without requiring an existing session; /v1/me sits
// behind JWT auth and echoes the caller's identity.
func RegisterSession(e *echo.Echo, s *handler.SessionHandler, jwtSecret string) {
	e.POST("/v1/session", s.Create)

	me := e.Group("/v1")
	me.Use(middleware.JWTAuth(jwtSecret))
	me.Use(middleware.RequireRole(handler.RoleStudent, handler.RoleAdmin))
	me.GET("/me", s.Me)
}

// RegisterReservations registers the student-facing reservation
// endpoints.  All of them require a valid session; both students and
// admins may reserve food.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleStudent, handler.RoleAdmin))

	// Claim one portion of a listing.
	g.POST("/listings/:id/reservations", r.Reserve)
	// Cancel an owned reservation; not idempotent, a second call is 404.
	g.DELETE("/reservations/:id", r.Cancel)
	// The caller's active reservations in the order they were made.
	g.GET("/my-reservations", r.MyReservations)
}

// RegisterAdmin registers the listing-management endpoints for cafe
// and event staff.  Only ADMIN sessions may reach them.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(handler.RoleAdmin))

	g.POST("/listings", a.CreateListing)
	g.GET("/listings", a.GetListings)
}
