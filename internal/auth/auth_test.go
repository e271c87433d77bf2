package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatalf("no session cookie set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42, "admin")
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	s, ok := ParseSession(req)
	if !ok {
		t.Fatalf("expected valid session")
	}
	if s.UserID != 42 || s.Role != "admin" {
		t.Fatalf("unexpected session: %#v", s)
	}
}

func TestSessionTamperedSignature(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 7, "normal")
	c := sessionCookie(t, rec)

	// promote the role without re-signing
	parts := strings.Split(c.Value, ".")
	c.Value = parts[0] + ".admin." + parts[2]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, ok := ParseSession(req); ok {
		t.Fatalf("tampered cookie accepted")
	}
}

func TestSessionMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "garbage"})
	if _, ok := ParseSession(req); ok {
		t.Fatalf("malformed cookie accepted")
	}
}

func TestRequireAuthAndAdmin(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// no session -> 401
	w := httptest.NewRecorder()
	Middleware(RequireAuth(okHandler)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	// normal session -> 200 through RequireAuth, 403 through RequireAdmin
	rec := httptest.NewRecorder()
	CreateSession(rec, 3, "normal")
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	Middleware(RequireAuth(okHandler)).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	w = httptest.NewRecorder()
	Middleware(RequireAuth(RequireAdmin(okHandler))).ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", w.Code)
	}
}

func TestRequireAuthVerifierRejectsMissingUser(t *testing.T) {
	SetUserVerifier(func(_ context.Context, _ uint) bool { return false })
	t.Cleanup(func() { SetUserVerifier(nil) })

	rec := httptest.NewRecorder()
	CreateSession(rec, 99, "normal")
	c := sessionCookie(t, rec)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	w := httptest.NewRecorder()
	Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for vanished user got %d", w.Code)
	}
}
