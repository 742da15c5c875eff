package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/config"
	"github.com/okheya/food-rescue/internal/utils"
)

// Roles carried in the session token.  Students browse and reserve;
// admins additionally manage listings.
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

// SessionHandler implements the session boundary.  Student logins are
// deliberately credential-free, matching the campus app this service
// fronts: any name and email establish a session.  Admin sessions
// require the configured passcode.  The handler's only real job is to
// mint a token whose sub/email claims form the reservation identity.
type SessionHandler struct {
	Cfg config.Config
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(cfg config.Config) *SessionHandler {
	return &SessionHandler{Cfg: cfg}
}

// ----- DTOs -----

type sessionReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`     // STUDENT (default) | ADMIN
	Passcode string `json:"passcode"` // required for ADMIN
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type sessionResp struct {
	User    sessionUser `json:"user"`
	Token   string      `json:"token"`
	Expires time.Time   `json:"expires"`
}

// Create handles POST /v1/session.  It validates the request, derives
// a stable user ID from the email, and returns a signed session token.
// An ADMIN session is only issued when the supplied passcode matches
// the configured bcrypt hash; with no hash configured, admin login is
// disabled entirely.
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = utils.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role != RoleAdmin {
		role = RoleStudent
	}
	if role == RoleAdmin {
		if h.Cfg.AdminPasscodeHash == "" {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin login disabled"})
		}
		if !utils.VerifyPassword(h.Cfg.AdminPasscodeHash, req.Passcode) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid passcode"})
		}
	}

	userID := utils.UserIDFromEmail(req.Email)
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, userID, req.Email, req.Name, role, h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, sessionResp{
		User:    sessionUser{ID: userID, Email: req.Email, Name: req.Name, Role: role},
		Token:   tok.Token,
		Expires: tok.Exp,
	})
}

// Me handles GET /v1/me.  It echoes the identity claims of the
// authenticated session so clients can restore their state.
func (h *SessionHandler) Me(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, sessionUser{
		ID:    id.UserID,
		Email: id.UserEmail,
		Name:  stringClaim(c, "user_name"),
		Role:  stringClaim(c, "role"),
	})
}
