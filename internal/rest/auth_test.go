package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dealsHub/internal/middleware"
	"dealsHub/internal/session"
	"dealsHub/pkg/config"
	"dealsHub/pkg/utils"

	"github.com/labstack/echo/v4"
)

type fakeSessionStore struct {
	stored  map[string]session.Data
	revoked []string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{stored: map[string]session.Data{}}
}

func (f *fakeSessionStore) Store(_ context.Context, token string, data session.Data, _ time.Duration) error {
	f.stored[token] = data
	return nil
}

func (f *fakeSessionStore) Revoke(_ context.Context, token string) error {
	f.revoked = append(f.revoked, token)
	delete(f.stored, token)
	return nil
}

func testAdmin() config.AdminConfig {
	return config.AdminConfig{Username: "admin", Password: "s3cret"}
}

func doLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login: %v", err)
	}

	return rec
}

func TestLoginSuccessSetsCookieAndSession(t *testing.T) {
	utils.InitJWT("test-secret")
	sessions := newFakeSessionStore()
	h := NewAuthHandler(testAdmin(), sessions)

	rec := doLogin(t, h, `{"username":"admin","password":"s3cret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AdminTokenCookie {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value == "" {
		t.Fatal("login must set the admin token cookie")
	}

	if _, ok := sessions.stored[cookie.Value]; !ok {
		t.Fatal("login must register the token in the session store")
	}

	claims, err := utils.ParseJWT(cookie.Value)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	utils.InitJWT("test-secret")
	h := NewAuthHandler(testAdmin(), nil)

	cases := []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"intruder","password":"s3cret"}`,
	}
	for _, body := range cases {
		if rec := doLogin(t, h, body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: status = %d, want 401", body, rec.Code)
		}
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	utils.InitJWT("test-secret")
	h := NewAuthHandler(testAdmin(), nil)

	if rec := doLogin(t, h, `{"username":"admin"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLogoutRevokesSessionToken(t *testing.T) {
	utils.InitJWT("test-secret")
	sessions := newFakeSessionStore()
	h := NewAuthHandler(testAdmin(), sessions)

	rec := doLogin(t, h, `{"username":"admin","password":"s3cret"}`)
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.AdminTokenCookie {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no token issued")
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AdminTokenCookie, Value: token})
	out := httptest.NewRecorder()

	if err := h.Logout(e.NewContext(req, out)); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if out.Code != http.StatusOK {
		t.Fatalf("status = %d", out.Code)
	}

	if len(sessions.revoked) != 1 || sessions.revoked[0] != token {
		t.Fatalf("revoked = %v", sessions.revoked)
	}
}
