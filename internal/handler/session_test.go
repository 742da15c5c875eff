package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/okheya/food-rescue/internal/config"
	"github.com/okheya/food-rescue/internal/utils"
)

func sessionCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/v1/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testSessionHandler(t *testing.T) *SessionHandler {
	t.Helper()
	return NewSessionHandler(config.Config{
		JWTSecret:     "test-secret",
		SessionTTLMin: 60,
	})
}

func TestSessionCreate_Student(t *testing.T) {
	e := echo.New()
	h := testSessionHandler(t)

	c, rec := sessionCtx(e, `{"name":"Alice","email":"Alice@SCU.edu"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body=%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	user := body["user"].(map[string]any)
	if user["email"] != "alice@scu.edu" {
		t.Errorf("email not normalized: %v", user["email"])
	}
	if user["role"] != RoleStudent {
		t.Errorf("expected STUDENT role, got %v", user["role"])
	}
	if user["id"] != utils.UserIDFromEmail("alice@scu.edu") {
		t.Errorf("id not derived from email: %v", user["id"])
	}
	if tok, _ := body["token"].(string); tok == "" {
		t.Error("no token in response")
	}
}

func TestSessionCreate_EmailRequired(t *testing.T) {
	e := echo.New()
	h := testSessionHandler(t)

	c, rec := sessionCtx(e, `{"name":"Alice"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSessionCreate_AdminDisabled(t *testing.T) {
	e := echo.New()
	h := testSessionHandler(t) // no passcode hash configured

	c, rec := sessionCtx(e, `{"name":"Ops","email":"ops@scu.edu","role":"ADMIN","passcode":"whatever"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestSessionCreate_Admin(t *testing.T) {
	hash, err := utils.HashPassword("open-sesame", 4)
	if err != nil {
		t.Fatalf("hash passcode: %v", err)
	}
	e := echo.New()
	h := NewSessionHandler(config.Config{
		JWTSecret:         "test-secret",
		SessionTTLMin:     60,
		AdminPasscodeHash: hash,
	})

	c, rec := sessionCtx(e, `{"name":"Ops","email":"ops@scu.edu","role":"admin","passcode":"wrong"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong passcode: expected 401, got %d", rec.Code)
	}

	c, rec = sessionCtx(e, `{"name":"Ops","email":"ops@scu.edu","role":"admin","passcode":"open-sesame"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body=%s)", rec.Code, rec.Body.String())
	}
	user := decodeBody(t, rec)["user"].(map[string]any)
	if user["role"] != RoleAdmin {
		t.Errorf("expected ADMIN role, got %v", user["role"])
	}
}
